package server

import (
	"context"
	"io"

	"bazario/internal/client"
	"bazario/internal/database"
	"bazario/internal/identity"
	logpkg "bazario/internal/logger"
)

// mockStore implements Store; unset funcs return zero values.
type mockStore struct {
	ProductInsertFunc        func(ctx context.Context, p database.Product) (database.InsertResult, error)
	ProductFindOneFunc       func(ctx context.Context, productID string) (database.Product, error)
	ProductsFindAllFunc      func(ctx context.Context) ([]database.Product, error)
	ProductsFindApprovedFunc func(ctx context.Context, limit int64) ([]database.Product, error)
	ProductsFindByVendorFunc func(ctx context.Context, email string) ([]database.Product, error)
	ProductStatusUpdateFunc  func(ctx context.Context, productID string, status string) (database.UpdateResult, error)
	ProductRejectFunc        func(ctx context.Context, productID string, feedback string) (database.UpdateResult, error)
	ProductUpdateFunc        func(ctx context.Context, productID string, name string, price *int) (database.UpdateResult, error)
	ProductDeleteFunc        func(ctx context.Context, productID string) (database.DeleteResult, error)

	ReviewInsertFunc         func(ctx context.Context, rv database.Review) (database.InsertResult, error)
	ReviewsFindByProductFunc func(ctx context.Context, productID string) ([]database.Review, error)

	UserUpsertByEmailFunc      func(ctx context.Context, email string) (database.UpdateResult, error)
	UserFindByEmailFunc        func(ctx context.Context, email string) (database.User, error)
	UsersFindAllFunc           func(ctx context.Context) ([]database.User, error)
	UserRoleUpdateFunc         func(ctx context.Context, email string, role string) (database.UpdateResult, error)
	UserSellerStatusUpdateFunc func(ctx context.Context, email string, status string) (database.UpdateResult, error)

	AdvertInsertFunc       func(ctx context.Context, a database.Advert) (database.InsertResult, error)
	AdvertFindOneFunc      func(ctx context.Context, advertID string) (database.Advert, error)
	AdvertsFindAllFunc     func(ctx context.Context) ([]database.Advert, error)
	AdvertStatusUpdateFunc func(ctx context.Context, advertID string, status string) (database.UpdateResult, error)
	AdvertDeleteFunc       func(ctx context.Context, advertID string) (database.DeleteResult, error)

	PaymentRecordFunc       func(ctx context.Context, p database.Payment) (database.InsertResult, error)
	PaymentsFindByEmailFunc func(ctx context.Context, email string) ([]database.Payment, error)
	PaymentsFindAllFunc     func(ctx context.Context) ([]database.Payment, error)

	WatchlistInsertFunc func(ctx context.Context, e database.WatchlistEntry) (database.InsertResult, error)
}

func (m *mockStore) ProductInsert(ctx context.Context, p database.Product) (database.InsertResult, error) {
	if m.ProductInsertFunc != nil {
		return m.ProductInsertFunc(ctx, p)
	}
	return database.InsertResult{}, nil
}

func (m *mockStore) ProductFindOne(ctx context.Context, productID string) (database.Product, error) {
	if m.ProductFindOneFunc != nil {
		return m.ProductFindOneFunc(ctx, productID)
	}
	return database.Product{}, nil
}

func (m *mockStore) ProductsFindAll(ctx context.Context) ([]database.Product, error) {
	if m.ProductsFindAllFunc != nil {
		return m.ProductsFindAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockStore) ProductsFindApproved(ctx context.Context, limit int64) ([]database.Product, error) {
	if m.ProductsFindApprovedFunc != nil {
		return m.ProductsFindApprovedFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockStore) ProductsFindByVendor(ctx context.Context, email string) ([]database.Product, error) {
	if m.ProductsFindByVendorFunc != nil {
		return m.ProductsFindByVendorFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockStore) ProductStatusUpdate(ctx context.Context, productID string, status string) (database.UpdateResult, error) {
	if m.ProductStatusUpdateFunc != nil {
		return m.ProductStatusUpdateFunc(ctx, productID, status)
	}
	return database.UpdateResult{}, nil
}

func (m *mockStore) ProductReject(ctx context.Context, productID string, feedback string) (database.UpdateResult, error) {
	if m.ProductRejectFunc != nil {
		return m.ProductRejectFunc(ctx, productID, feedback)
	}
	return database.UpdateResult{}, nil
}

func (m *mockStore) ProductUpdate(ctx context.Context, productID string, name string, price *int) (database.UpdateResult, error) {
	if m.ProductUpdateFunc != nil {
		return m.ProductUpdateFunc(ctx, productID, name, price)
	}
	return database.UpdateResult{}, nil
}

func (m *mockStore) ProductDelete(ctx context.Context, productID string) (database.DeleteResult, error) {
	if m.ProductDeleteFunc != nil {
		return m.ProductDeleteFunc(ctx, productID)
	}
	return database.DeleteResult{}, nil
}

func (m *mockStore) ReviewInsert(ctx context.Context, rv database.Review) (database.InsertResult, error) {
	if m.ReviewInsertFunc != nil {
		return m.ReviewInsertFunc(ctx, rv)
	}
	return database.InsertResult{}, nil
}

func (m *mockStore) ReviewsFindByProduct(ctx context.Context, productID string) ([]database.Review, error) {
	if m.ReviewsFindByProductFunc != nil {
		return m.ReviewsFindByProductFunc(ctx, productID)
	}
	return nil, nil
}

func (m *mockStore) UserUpsertByEmail(ctx context.Context, email string) (database.UpdateResult, error) {
	if m.UserUpsertByEmailFunc != nil {
		return m.UserUpsertByEmailFunc(ctx, email)
	}
	return database.UpdateResult{}, nil
}

func (m *mockStore) UserFindByEmail(ctx context.Context, email string) (database.User, error) {
	if m.UserFindByEmailFunc != nil {
		return m.UserFindByEmailFunc(ctx, email)
	}
	return database.User{}, nil
}

func (m *mockStore) UsersFindAll(ctx context.Context) ([]database.User, error) {
	if m.UsersFindAllFunc != nil {
		return m.UsersFindAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockStore) UserRoleUpdate(ctx context.Context, email string, role string) (database.UpdateResult, error) {
	if m.UserRoleUpdateFunc != nil {
		return m.UserRoleUpdateFunc(ctx, email, role)
	}
	return database.UpdateResult{}, nil
}

func (m *mockStore) UserSellerStatusUpdate(ctx context.Context, email string, status string) (database.UpdateResult, error) {
	if m.UserSellerStatusUpdateFunc != nil {
		return m.UserSellerStatusUpdateFunc(ctx, email, status)
	}
	return database.UpdateResult{}, nil
}

func (m *mockStore) AdvertInsert(ctx context.Context, a database.Advert) (database.InsertResult, error) {
	if m.AdvertInsertFunc != nil {
		return m.AdvertInsertFunc(ctx, a)
	}
	return database.InsertResult{}, nil
}

func (m *mockStore) AdvertFindOne(ctx context.Context, advertID string) (database.Advert, error) {
	if m.AdvertFindOneFunc != nil {
		return m.AdvertFindOneFunc(ctx, advertID)
	}
	return database.Advert{}, nil
}

func (m *mockStore) AdvertsFindAll(ctx context.Context) ([]database.Advert, error) {
	if m.AdvertsFindAllFunc != nil {
		return m.AdvertsFindAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockStore) AdvertStatusUpdate(ctx context.Context, advertID string, status string) (database.UpdateResult, error) {
	if m.AdvertStatusUpdateFunc != nil {
		return m.AdvertStatusUpdateFunc(ctx, advertID, status)
	}
	return database.UpdateResult{}, nil
}

func (m *mockStore) AdvertDelete(ctx context.Context, advertID string) (database.DeleteResult, error) {
	if m.AdvertDeleteFunc != nil {
		return m.AdvertDeleteFunc(ctx, advertID)
	}
	return database.DeleteResult{}, nil
}

func (m *mockStore) PaymentRecord(ctx context.Context, p database.Payment) (database.InsertResult, error) {
	if m.PaymentRecordFunc != nil {
		return m.PaymentRecordFunc(ctx, p)
	}
	return database.InsertResult{}, nil
}

func (m *mockStore) PaymentsFindByEmail(ctx context.Context, email string) ([]database.Payment, error) {
	if m.PaymentsFindByEmailFunc != nil {
		return m.PaymentsFindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockStore) PaymentsFindAll(ctx context.Context) ([]database.Payment, error) {
	if m.PaymentsFindAllFunc != nil {
		return m.PaymentsFindAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockStore) WatchlistInsert(ctx context.Context, e database.WatchlistEntry) (database.InsertResult, error) {
	if m.WatchlistInsertFunc != nil {
		return m.WatchlistInsertFunc(ctx, e)
	}
	return database.InsertResult{}, nil
}

type mockVerifier struct {
	VerifyFunc func(ctx context.Context, token string) (identity.Claims, error)
}

func (m *mockVerifier) Verify(ctx context.Context, token string) (identity.Claims, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	return identity.Claims{Subject: "user-1", Email: "buyer@example.com"}, nil
}

type mockGateway struct {
	PaymentIntentCreateFunc func(ctx context.Context, amount int, currency string) (client.PaymentIntent, error)
}

func (m *mockGateway) PaymentIntentCreate(ctx context.Context, amount int, currency string) (client.PaymentIntent, error) {
	if m.PaymentIntentCreateFunc != nil {
		return m.PaymentIntentCreateFunc(ctx, amount, currency)
	}
	return client.PaymentIntent{}, nil
}

func newTestServer(db *mockStore) Server {
	return Server{
		DB:       db,
		Verifier: &mockVerifier{},
		Gateway:  &mockGateway{},
		Logger:   logpkg.NewLogger(logpkg.LevelOff, io.Discard),
	}
}
