package server

import (
	"context"

	"bazario/internal/client"
	"bazario/internal/database"
	"bazario/internal/identity"
)

// Server carries the external collaborators as explicit dependencies; nothing
// is process-global.
type Server struct {
	DB       Store
	Verifier TokenVerifier
	Gateway  PaymentGateway
	Logger   logger
}

// Store is the document store surface the route table uses, implemented by
// database.Database.
type Store interface {
	ProductInsert(ctx context.Context, p database.Product) (database.InsertResult, error)
	ProductFindOne(ctx context.Context, productID string) (database.Product, error)
	ProductsFindAll(ctx context.Context) ([]database.Product, error)
	ProductsFindApproved(ctx context.Context, limit int64) ([]database.Product, error)
	ProductsFindByVendor(ctx context.Context, email string) ([]database.Product, error)
	ProductStatusUpdate(ctx context.Context, productID string, status string) (database.UpdateResult, error)
	ProductReject(ctx context.Context, productID string, feedback string) (database.UpdateResult, error)
	ProductUpdate(ctx context.Context, productID string, name string, price *int) (database.UpdateResult, error)
	ProductDelete(ctx context.Context, productID string) (database.DeleteResult, error)

	ReviewInsert(ctx context.Context, rv database.Review) (database.InsertResult, error)
	ReviewsFindByProduct(ctx context.Context, productID string) ([]database.Review, error)

	UserUpsertByEmail(ctx context.Context, email string) (database.UpdateResult, error)
	UserFindByEmail(ctx context.Context, email string) (database.User, error)
	UsersFindAll(ctx context.Context) ([]database.User, error)
	UserRoleUpdate(ctx context.Context, email string, role string) (database.UpdateResult, error)
	UserSellerStatusUpdate(ctx context.Context, email string, status string) (database.UpdateResult, error)

	AdvertInsert(ctx context.Context, a database.Advert) (database.InsertResult, error)
	AdvertFindOne(ctx context.Context, advertID string) (database.Advert, error)
	AdvertsFindAll(ctx context.Context) ([]database.Advert, error)
	AdvertStatusUpdate(ctx context.Context, advertID string, status string) (database.UpdateResult, error)
	AdvertDelete(ctx context.Context, advertID string) (database.DeleteResult, error)

	PaymentRecord(ctx context.Context, p database.Payment) (database.InsertResult, error)
	PaymentsFindByEmail(ctx context.Context, email string) ([]database.Payment, error)
	PaymentsFindAll(ctx context.Context) ([]database.Payment, error)

	WatchlistInsert(ctx context.Context, e database.WatchlistEntry) (database.InsertResult, error)
}

// TokenVerifier is implemented by identity.Verifier.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (identity.Claims, error)
}

// PaymentGateway is implemented by client.Client.
type PaymentGateway interface {
	PaymentIntentCreate(ctx context.Context, amount int, currency string) (client.PaymentIntent, error)
}

type logger interface {
	Debug(v ...any)
	Info(v ...any)
	Error(v ...any)
	Tracef(format string, v ...any)
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}
