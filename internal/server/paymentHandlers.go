package server

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bazario/internal/database"
)

// paymentCurrency is fixed; the gateway account settles everything in it.
const paymentCurrency = "usd"

func (s Server) paymentIntentCreate() http.HandlerFunc {
	type request struct {
		Price int `json:"price"`
	}
	type response struct {
		ClientSecret string `json:"clientSecret"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("paymentIntentCreate: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		// Price arrives already in minor currency units and goes to the
		// gateway as-is.
		pi, err := s.Gateway.PaymentIntentCreate(r.Context(), req.Price, paymentCurrency)
		if err != nil {
			s.Logger.Errorf("paymentIntentCreate: Error creating payment intent, amount: %d, err: %v", req.Price, err)
			s.writeUpstreamError(w, err)
			return
		}
		s.writeJsonResponse(w, response{ClientSecret: pi.ClientSecret}, http.StatusOK)
	}
}

func (s Server) paymentRecord() http.HandlerFunc {
	type request struct {
		ParcelID      string `json:"parcel_id"`
		TransactionID string `json:"transaction_id"`
		Price         int    `json:"price"`
		ProductName   string `json:"product_name"`
		MarketName    string `json:"market_name"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := getClaimsContext(r.Context())
		if !ok {
			s.Logger.Error("paymentRecord: No Claims on request context")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("paymentRecord: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		parcelOID, err := primitive.ObjectIDFromHex(req.ParcelID)
		if err != nil {
			s.Logger.Debugf("paymentRecord: Invalid parcel_id: %q, err: %v", req.ParcelID, err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if req.TransactionID == "" {
			s.Logger.Debugf("paymentRecord: transaction_id is not supplied, ParcelID: %s", req.ParcelID)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		res, err := s.DB.PaymentRecord(r.Context(), database.Payment{
			ParcelID:      parcelOID,
			TransactionID: req.TransactionID,
			Price:         req.Price,
			ProductName:   req.ProductName,
			MarketName:    req.MarketName,
			Email:         claims.Email,
		})
		if err != nil {
			if errors.Is(err, database.ErrParcelNotFound) {
				s.Logger.Debugf("paymentRecord: No Product found with ParcelID: %s", req.ParcelID)
				s.writeMessage(w, "parcel not found", http.StatusNotFound)
				return
			}
			s.Logger.Errorf("paymentRecord: Error recording Payment for ParcelID: %s, err: %v", req.ParcelID, err)
			s.writeUpstreamError(w, err)
			return
		}
		s.writeJsonResponse(w, res, http.StatusCreated)
	}
}

func (s Server) paymentGetForUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		if email == "" {
			s.Logger.Debug("paymentGetForUser: \"email\" query parameter is not supplied")
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		ps, err := s.DB.PaymentsFindByEmail(r.Context(), email)
		if err != nil {
			s.Logger.Errorf("paymentGetForUser: Error finding Payments with email: %s, err: %v", email, err)
			s.writeUpstreamError(w, err)
			return
		}
		if ps == nil {
			ps = []database.Payment{}
		}
		s.writeJsonResponse(w, ps, http.StatusOK)
	}
}

func (s Server) paymentGetAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ps, err := s.DB.PaymentsFindAll(r.Context())
		if err != nil {
			s.Logger.Errorf("paymentGetAll: Error finding Payments, err: %v", err)
			s.writeUpstreamError(w, err)
			return
		}
		if ps == nil {
			ps = []database.Payment{}
		}
		s.writeJsonResponse(w, ps, http.StatusOK)
	}
}
