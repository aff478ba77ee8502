package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"

	"bazario/internal/database"
)

const defaultListingLimit = 6

func validProductStatus(status string) bool {
	return status == database.ProductStatusPending ||
		status == database.ProductStatusApproved ||
		status == database.ProductStatusRejected
}

func (s Server) productGetAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ps, err := s.DB.ProductsFindAll(r.Context())
		if err != nil {
			s.Logger.Errorf("productGetAll: Error finding Products, err: %v", err)
			s.writeUpstreamError(w, err)
			return
		}
		if ps == nil {
			ps = []database.Product{}
		}
		s.writeJsonResponse(w, ps, http.StatusOK)
	}
}

func (s Server) productGetApproved() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
		if err != nil || limit <= 0 {
			limit = defaultListingLimit
		}
		ps, err := s.DB.ProductsFindApproved(r.Context(), int64(limit))
		if err != nil {
			s.Logger.Errorf("productGetApproved: Error finding approved Products, limit: %d, err: %v", limit, err)
			s.writeUpstreamError(w, err)
			return
		}
		if ps == nil {
			ps = []database.Product{}
		}
		s.writeJsonResponse(w, ps, http.StatusOK)
	}
}

func (s Server) productGetOne() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := mux.Vars(r)["productID"]
		p, err := s.DB.ProductFindOne(r.Context(), productID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				s.Logger.Debugf("productGetOne: No Product found with ID: %s", productID)
				s.writeMessage(w, "product not found", http.StatusNotFound)
				return
			}
			// Malformed identifiers land here and surface as 500.
			s.Logger.Errorf("productGetOne: Error finding Product with ID: %s, err: %v", productID, err)
			s.writeUpstreamError(w, err)
			return
		}
		s.writeJsonResponse(w, p, http.StatusOK)
	}
}

func (s Server) productAdd() http.HandlerFunc {
	type request struct {
		Name       string `json:"name"`
		MarketName string `json:"market_name"`
		Price      int    `json:"price"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := getClaimsContext(r.Context())
		if !ok {
			s.Logger.Error("productAdd: No Claims on request context")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("productAdd: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if req.Name == "" || req.Price < 0 {
			s.Logger.Debugf("productAdd: Invalid listing, name: %q, price: %d", req.Name, req.Price)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		res, err := s.DB.ProductInsert(r.Context(), database.Product{
			VendorEmail: claims.Email,
			Name:        req.Name,
			MarketName:  req.MarketName,
			Price:       req.Price,
		})
		if err != nil {
			s.Logger.Errorf("productAdd: Error inserting Product, err: %v", err)
			s.writeUpstreamError(w, err)
			return
		}
		s.writeJsonResponse(w, res, http.StatusCreated)
	}
}

func (s Server) productGetByVendor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		if email == "" {
			s.Logger.Debug("productGetByVendor: \"email\" query parameter is not supplied")
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		ps, err := s.DB.ProductsFindByVendor(r.Context(), email)
		if err != nil {
			s.Logger.Errorf("productGetByVendor: Error finding Products with vendor email: %s, err: %v", email, err)
			s.writeUpstreamError(w, err)
			return
		}
		if ps == nil {
			ps = []database.Product{}
		}
		s.writeJsonResponse(w, ps, http.StatusOK)
	}
}

// productStatusUpdate sets any of the three approval statuses with no
// transition guard. Approving a listing also marks its vendor as an approved
// seller.
func (s Server) productStatusUpdate() http.HandlerFunc {
	type request struct {
		Status string `json:"status"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		productID := mux.Vars(r)["productID"]

		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("productStatusUpdate: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if !validProductStatus(req.Status) {
			s.Logger.Debugf("productStatusUpdate: Invalid status: %q for Product with ID: %s", req.Status, productID)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		p, err := s.DB.ProductFindOne(r.Context(), productID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				s.Logger.Debugf("productStatusUpdate: No Product found with ID: %s", productID)
				s.writeMessage(w, "product not found", http.StatusNotFound)
				return
			}
			s.Logger.Errorf("productStatusUpdate: Error finding Product with ID: %s, err: %v", productID, err)
			s.writeUpstreamError(w, err)
			return
		}

		res, err := s.DB.ProductStatusUpdate(r.Context(), productID, req.Status)
		if err != nil {
			s.Logger.Errorf("productStatusUpdate: Error updating status of Product with ID: %s, err: %v", productID, err)
			s.writeUpstreamError(w, err)
			return
		}

		if req.Status == database.ProductStatusApproved && p.VendorEmail != "" {
			if _, err := s.DB.UserSellerStatusUpdate(r.Context(), p.VendorEmail, database.ProductStatusApproved); err != nil {
				s.Logger.Errorf("productStatusUpdate: Error updating sellerStatus of User with email: %s, err: %v",
					p.VendorEmail, err)
			}
		}
		s.writeJsonResponse(w, res, http.StatusOK)
	}
}

func (s Server) productReject() http.HandlerFunc {
	type request struct {
		Feedback string `json:"feedback"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		productID := mux.Vars(r)["productID"]

		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("productReject: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		res, err := s.DB.ProductReject(r.Context(), productID, req.Feedback)
		if err != nil {
			s.Logger.Errorf("productReject: Error rejecting Product with ID: %s, err: %v", productID, err)
			s.writeUpstreamError(w, err)
			return
		}
		if res.MatchedCount == 0 {
			s.Logger.Debugf("productReject: No Product found with ID: %s", productID)
			s.writeMessage(w, "product not found", http.StatusNotFound)
			return
		}
		s.writeJsonResponse(w, res, http.StatusOK)
	}
}

func (s Server) productUpdate() http.HandlerFunc {
	type request struct {
		Name  string `json:"name"`
		Price *int   `json:"price"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		productID := mux.Vars(r)["productID"]

		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("productUpdate: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if req.Name == "" && req.Price == nil {
			s.Logger.Debugf("productUpdate: Nothing to update for Product with ID: %s", productID)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if req.Price != nil && *req.Price < 0 {
			s.Logger.Debugf("productUpdate: Invalid price: %d for Product with ID: %s", *req.Price, productID)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		res, err := s.DB.ProductUpdate(r.Context(), productID, req.Name, req.Price)
		if err != nil {
			s.Logger.Errorf("productUpdate: Error updating Product with ID: %s, err: %v", productID, err)
			s.writeUpstreamError(w, err)
			return
		}
		if res.MatchedCount == 0 {
			s.Logger.Debugf("productUpdate: No Product found with ID: %s", productID)
			s.writeMessage(w, "product not found", http.StatusNotFound)
			return
		}
		s.writeJsonResponse(w, res, http.StatusOK)
	}
}

func (s Server) productDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := mux.Vars(r)["productID"]
		res, err := s.DB.ProductDelete(r.Context(), productID)
		if err != nil {
			s.Logger.Errorf("productDelete: Error deleting Product with ID: %s, err: %v", productID, err)
			s.writeUpstreamError(w, err)
			return
		}
		s.writeJsonResponse(w, res, http.StatusOK)
	}
}
