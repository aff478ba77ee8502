package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bazario/internal/database"
)

func (s Server) advertAdd() http.HandlerFunc {
	type request struct {
		ProductID   string `json:"product_id"`
		Name        string `json:"name"`
		MarketName  string `json:"market_name"`
		Image       string `json:"image"`
		Description string `json:"description"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := getClaimsContext(r.Context())
		if !ok {
			s.Logger.Error("advertAdd: No Claims on request context")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("advertAdd: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			s.Logger.Debug("advertAdd: Advert name is not supplied")
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		a := database.Advert{
			VendorEmail: claims.Email,
			Name:        req.Name,
			MarketName:  req.MarketName,
			Image:       req.Image,
			Description: req.Description,
			Status:      database.ProductStatusPending,
		}
		if req.ProductID != "" {
			productOID, err := primitive.ObjectIDFromHex(req.ProductID)
			if err != nil {
				s.Logger.Debugf("advertAdd: Invalid product_id: %q, err: %v", req.ProductID, err)
				http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
				return
			}
			a.ProductID = productOID
		}

		res, err := s.DB.AdvertInsert(r.Context(), a)
		if err != nil {
			s.Logger.Errorf("advertAdd: Error inserting Advert, err: %v", err)
			s.writeUpstreamError(w, err)
			return
		}
		s.writeJsonResponse(w, res, http.StatusCreated)
	}
}

func (s Server) advertGetAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		as, err := s.DB.AdvertsFindAll(r.Context())
		if err != nil {
			s.Logger.Errorf("advertGetAll: Error finding Adverts, err: %v", err)
			s.writeUpstreamError(w, err)
			return
		}
		if as == nil {
			as = []database.Advert{}
		}
		s.writeJsonResponse(w, as, http.StatusOK)
	}
}

func (s Server) advertGetOne() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		advertID := mux.Vars(r)["advertID"]
		a, err := s.DB.AdvertFindOne(r.Context(), advertID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				s.Logger.Debugf("advertGetOne: No Advert found with ID: %s", advertID)
				s.writeMessage(w, "advertisement not found", http.StatusNotFound)
				return
			}
			s.Logger.Errorf("advertGetOne: Error finding Advert with ID: %s, err: %v", advertID, err)
			s.writeUpstreamError(w, err)
			return
		}
		s.writeJsonResponse(w, a, http.StatusOK)
	}
}

func (s Server) advertStatusUpdate() http.HandlerFunc {
	type request struct {
		Status string `json:"status"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		advertID := mux.Vars(r)["advertID"]

		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("advertStatusUpdate: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if req.Status == "" {
			s.Logger.Debugf("advertStatusUpdate: Empty status for Advert with ID: %s", advertID)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		res, err := s.DB.AdvertStatusUpdate(r.Context(), advertID, req.Status)
		if err != nil {
			s.Logger.Errorf("advertStatusUpdate: Error updating status of Advert with ID: %s, err: %v", advertID, err)
			s.writeUpstreamError(w, err)
			return
		}
		if res.MatchedCount == 0 {
			s.Logger.Debugf("advertStatusUpdate: No Advert found with ID: %s", advertID)
			s.writeMessage(w, "advertisement not found", http.StatusNotFound)
			return
		}
		s.writeJsonResponse(w, res, http.StatusOK)
	}
}

func (s Server) advertDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		advertID := mux.Vars(r)["advertID"]
		res, err := s.DB.AdvertDelete(r.Context(), advertID)
		if err != nil {
			s.Logger.Errorf("advertDelete: Error deleting Advert with ID: %s, err: %v", advertID, err)
			s.writeUpstreamError(w, err)
			return
		}
		s.writeJsonResponse(w, res, http.StatusOK)
	}
}
