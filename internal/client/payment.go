package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"bazario/internal/misc"
)

// PaymentIntent is the subset of the gateway's payment intent object that the
// API surfaces to callers.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int    `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// PaymentIntentCreate creates a payment intent for amount in minor currency
// units. The amount is passed through as-is; the gateway owns all validation.
func (c Client) PaymentIntentCreate(ctx context.Context, amount int, currency string) (PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.Itoa(amount))
	form.Set("currency", currency)
	form.Set("payment_method_types[]", "card")

	req, err := newRequest(ctx, http.MethodPost, c.PaymentAPIURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return PaymentIntent{}, errors.Wrapf(err, "PaymentIntentCreate: error creating HTTP request, amount: %d", amount)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.PaymentSecretKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return PaymentIntent{}, errors.Wrapf(err, "PaymentIntentCreate: error doing request, amount: %d", amount)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.Logger.Errorf("PaymentIntentCreate: error closing response body, err: %v", err)
		}
	}()

	respBody, err := io.ReadAll(http.MaxBytesReader(nil, resp.Body, 300000))
	if err != nil {
		return PaymentIntent{}, errors.Wrapf(err, "PaymentIntentCreate: error reading gateway response body, amount: %d", amount)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.Logger.Debugf("PaymentIntentCreate: gateway returned status %d, body: %s", resp.StatusCode, misc.BytesLimit(respBody, 500))
		return PaymentIntent{}, errors.Errorf("PaymentIntentCreate: gateway returned status %d", resp.StatusCode)
	}

	pi := PaymentIntent{}
	err = json.Unmarshal(respBody, &pi)
	return pi, errors.Wrapf(err, "PaymentIntentCreate: error unmarshalling gateway response body: %s", misc.BytesLimit(respBody, 500))
}
