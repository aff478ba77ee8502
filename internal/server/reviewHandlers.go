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

func (s Server) reviewGetByProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := mux.Vars(r)["productID"]
		rvs, err := s.DB.ReviewsFindByProduct(r.Context(), productID)
		if err != nil {
			s.Logger.Errorf("reviewGetByProduct: Error finding Reviews for ProductID: %s, err: %v", productID, err)
			s.writeUpstreamError(w, err)
			return
		}
		if rvs == nil {
			rvs = []database.Review{}
		}
		s.writeJsonResponse(w, rvs, http.StatusOK)
	}
}

// reviewAdd inserts one review per (product, reviewer) pair. Uniqueness comes
// from the store index; a duplicate insert surfaces as 409.
func (s Server) reviewAdd() http.HandlerFunc {
	type request struct {
		ProductID string `json:"product_id"`
		Comment   string `json:"comment"`
		Rating    int    `json:"rating"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := getClaimsContext(r.Context())
		if !ok {
			s.Logger.Error("reviewAdd: No Claims on request context")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("reviewAdd: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		productOID, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			s.Logger.Debugf("reviewAdd: Invalid product_id: %q, err: %v", req.ProductID, err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		res, err := s.DB.ReviewInsert(r.Context(), database.Review{
			ProductID: productOID,
			UserEmail: claims.Email,
			Comment:   req.Comment,
			Rating:    req.Rating,
		})
		if err != nil {
			if mongo.IsDuplicateKeyError(errors.Cause(err)) {
				s.Logger.Debugf("reviewAdd: Duplicate Review for ProductID: %s by: %s", req.ProductID, claims.Email)
				s.writeMessage(w, "review already exists for this product", http.StatusConflict)
				return
			}
			s.Logger.Errorf("reviewAdd: Error inserting Review for ProductID: %s, err: %v", req.ProductID, err)
			s.writeUpstreamError(w, err)
			return
		}
		s.writeJsonResponse(w, res, http.StatusCreated)
	}
}
