package client

import (
	"context"
	"io"
	"net/http"
)

// Client talks to the external payment gateway.
type Client struct {
	*http.Client
	PaymentAPIURL    string
	PaymentSecretKey string
	Logger           logger
}

type logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

func newRequest(ctx context.Context, method string, url string, body io.Reader) (*http.Request, error) {
	r, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	r.Header.Set("Accept", "application/json")
	return r, nil
}
