package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bazario/internal/database"
)

func TestProductGetOneNotFound(t *testing.T) {
	s := newTestServer(&mockStore{
		ProductFindOneFunc: func(ctx context.Context, productID string) (database.Product, error) {
			return database.Product{}, errors.Wrapf(mongo.ErrNoDocuments, "error finding Product with ID: %s", productID)
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/products/656565656565656565656565", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "product not found" {
		t.Errorf("message = %q, want \"product not found\"", msg)
	}
}

func TestProductGetOneMalformedID(t *testing.T) {
	s := newTestServer(&mockStore{
		ProductFindOneFunc: func(ctx context.Context, productID string) (database.Product, error) {
			return database.Product{}, errors.Wrapf(primitive.ErrInvalidHex, "error creating ObjectID from hex: %s", productID)
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/products/not-an-object-id", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestProductGetOneFound(t *testing.T) {
	oid := primitive.NewObjectID()
	s := newTestServer(&mockStore{
		ProductFindOneFunc: func(ctx context.Context, productID string) (database.Product, error) {
			return database.Product{ID: oid, Name: "Old Bike", Status: database.ProductStatusApproved}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/products/"+oid.Hex(), nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var p database.Product
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatalf("error decoding response body: %v", err)
	}
	if p.Name != "Old Bike" {
		t.Errorf("product name = %q, want Old Bike", p.Name)
	}
}

func TestProductGetApprovedLimit(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantLimit int64
	}{
		{"explicit limit", "/products/approved?limit=3", 3},
		{"absent limit", "/products/approved", 6},
		{"non-numeric limit", "/products/approved?limit=lots", 6},
		{"negative limit", "/products/approved?limit=-2", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit int64
			s := newTestServer(&mockStore{
				ProductsFindApprovedFunc: func(ctx context.Context, limit int64) ([]database.Product, error) {
					gotLimit = limit
					return []database.Product{}, nil
				},
			})

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			s.Router().ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
			if gotLimit != tt.wantLimit {
				t.Errorf("limit passed to store = %d, want %d", gotLimit, tt.wantLimit)
			}
		})
	}
}

func TestProductAdd(t *testing.T) {
	var gotProduct database.Product
	s := newTestServer(&mockStore{
		ProductInsertFunc: func(ctx context.Context, p database.Product) (database.InsertResult, error) {
			gotProduct = p
			return database.InsertResult{InsertedID: "656565656565656565656565"}, nil
		},
	})

	body := strings.NewReader(`{"name":"Old Bike","market_name":"Bazario","price":12000}`)
	req := httptest.NewRequest(http.MethodPost, "/add-products", body)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var res database.InsertResult
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("error decoding response body: %v", err)
	}
	if res.InsertedID == "" {
		t.Error("response should contain an insertedId")
	}
	if gotProduct.VendorEmail != "buyer@example.com" {
		t.Errorf("vendor email = %q, want the claims email", gotProduct.VendorEmail)
	}
}

func TestProductAddInvalidBody(t *testing.T) {
	s := newTestServer(&mockStore{})

	body := strings.NewReader(`{"price":-5}`)
	req := httptest.NewRequest(http.MethodPost, "/add-products", body)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestProductStatusApproveUpdatesSellerStatus(t *testing.T) {
	oid := primitive.NewObjectID()
	var gotSellerEmail, gotSellerStatus string
	s := newTestServer(&mockStore{
		ProductFindOneFunc: func(ctx context.Context, productID string) (database.Product, error) {
			return database.Product{ID: oid, VendorEmail: "seller@example.com", Status: database.ProductStatusPending}, nil
		},
		ProductStatusUpdateFunc: func(ctx context.Context, productID string, status string) (database.UpdateResult, error) {
			return database.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
		UserSellerStatusUpdateFunc: func(ctx context.Context, email string, status string) (database.UpdateResult, error) {
			gotSellerEmail = email
			gotSellerStatus = status
			return database.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
	})

	body := strings.NewReader(`{"status":"approved"}`)
	req := httptest.NewRequest(http.MethodPatch, "/products/status/"+oid.Hex(), body)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotSellerEmail != "seller@example.com" {
		t.Errorf("sellerStatus updated for %q, want seller@example.com", gotSellerEmail)
	}
	if gotSellerStatus != "approved" {
		t.Errorf("sellerStatus set to %q, want approved", gotSellerStatus)
	}
}

func TestProductStatusRejectSkipsSellerStatus(t *testing.T) {
	oid := primitive.NewObjectID()
	sellerUpdateCalled := false
	s := newTestServer(&mockStore{
		ProductFindOneFunc: func(ctx context.Context, productID string) (database.Product, error) {
			return database.Product{ID: oid, VendorEmail: "seller@example.com"}, nil
		},
		ProductStatusUpdateFunc: func(ctx context.Context, productID string, status string) (database.UpdateResult, error) {
			return database.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
		UserSellerStatusUpdateFunc: func(ctx context.Context, email string, status string) (database.UpdateResult, error) {
			sellerUpdateCalled = true
			return database.UpdateResult{}, nil
		},
	})

	body := strings.NewReader(`{"status":"rejected"}`)
	req := httptest.NewRequest(http.MethodPatch, "/products/status/"+oid.Hex(), body)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if sellerUpdateCalled {
		t.Error("sellerStatus should not be updated for a non-approved status")
	}
}

func TestProductStatusUpdateInvalidStatus(t *testing.T) {
	s := newTestServer(&mockStore{})

	body := strings.NewReader(`{"status":"on-hold"}`)
	req := httptest.NewRequest(http.MethodPatch, "/products/status/656565656565656565656565", body)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestProductReject(t *testing.T) {
	var gotFeedback string
	s := newTestServer(&mockStore{
		ProductRejectFunc: func(ctx context.Context, productID string, feedback string) (database.UpdateResult, error) {
			gotFeedback = feedback
			return database.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
	})

	body := strings.NewReader(`{"feedback":"pictures are too blurry"}`)
	req := httptest.NewRequest(http.MethodPatch, "/products/reject/656565656565656565656565", body)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotFeedback != "pictures are too blurry" {
		t.Errorf("feedback = %q, want the request feedback", gotFeedback)
	}
}

func TestProductDelete(t *testing.T) {
	s := newTestServer(&mockStore{
		ProductDeleteFunc: func(ctx context.Context, productID string) (database.DeleteResult, error) {
			return database.DeleteResult{DeletedCount: 1}, nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/products/656565656565656565656565", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res database.DeleteResult
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("error decoding response body: %v", err)
	}
	if res.DeletedCount != 1 {
		t.Errorf("deletedCount = %d, want 1", res.DeletedCount)
	}
}

func TestProductGetByVendorRequiresEmail(t *testing.T) {
	s := newTestServer(&mockStore{})

	req := httptest.NewRequest(http.MethodGet, "/VendorsProducts", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestProductGetAllUpstreamError(t *testing.T) {
	s := newTestServer(&mockStore{
		ProductsFindAllFunc: func(ctx context.Context) ([]database.Product, error) {
			return nil, errors.New("connection reset by peer")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if msg := decodeMessage(t, rec); !strings.Contains(msg, "connection reset by peer") {
		t.Errorf("message = %q, should pass the upstream error through", msg)
	}
}
