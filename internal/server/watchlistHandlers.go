package server

import (
	"encoding/json"
	"net/http"

	"bazario/internal/database"
)

func (s Server) watchlistAdd() http.HandlerFunc {
	type request struct {
		ProductName string `json:"product_name"`
		MarketName  string `json:"market_name"`
		Date        string `json:"date"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := getClaimsContext(r.Context())
		if !ok {
			s.Logger.Error("watchlistAdd: No Claims on request context")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("watchlistAdd: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if req.ProductName == "" {
			s.Logger.Debug("watchlistAdd: product_name is not supplied")
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		res, err := s.DB.WatchlistInsert(r.Context(), database.WatchlistEntry{
			ProductName: req.ProductName,
			MarketName:  req.MarketName,
			Date:        req.Date,
			Email:       claims.Email,
		})
		if err != nil {
			s.Logger.Errorf("watchlistAdd: Error inserting WatchlistEntry for: %s, err: %v", req.ProductName, err)
			s.writeUpstreamError(w, err)
			return
		}
		s.writeJsonResponse(w, res, http.StatusCreated)
	}
}
