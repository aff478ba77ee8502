package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	Name                     = "bazario_db"
	CollectionProducts       = "products"
	CollectionReviews        = "reviews"
	CollectionUsers          = "users"
	CollectionAdvertisements = "advertisements"
	CollectionPayments       = "payments"
	CollectionWatchlist      = "watchlist"
)

type Database struct {
	*mongo.Database
}

// InsertResult mirrors the store's raw insert result, which mutation routes
// return to callers verbatim.
type InsertResult struct {
	InsertedID string `json:"insertedId"`
}

type UpdateResult struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// ConnectDB connects to the store and creates the indexes the handlers rely
// on: review uniqueness per (product_id, user_email) and user uniqueness per
// email are enforced here instead of by application-level existence checks.
func ConnectDB(ctx context.Context, dbURI string) (*mongo.Client, error) {
	c, err := mongo.Connect(ctx, options.Client().ApplyURI(dbURI))
	if err != nil {
		return nil, err
	}

	_, err = c.Database(Name).Collection(CollectionReviews).Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "product_id", Value: 1},
				{Key: "user_email", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	)
	if err != nil {
		return nil, err
	}

	_, err = c.Database(Name).Collection(CollectionUsers).Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	)
	if err != nil {
		return nil, err
	}

	_, err = c.Database(Name).Collection(CollectionProducts).Indexes().CreateMany(
		ctx,
		[]mongo.IndexModel{
			{
				Keys: bson.D{{Key: "vendor_email", Value: 1}},
			},
			{
				Keys: bson.D{
					{Key: "status", Value: 1},
					{Key: "price_history.date", Value: -1},
				},
			},
		},
	)
	if err != nil {
		return nil, err
	}

	_, err = c.Database(Name).Collection(CollectionPayments).Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "email", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
	)
	if err != nil {
		return nil, err
	}

	return c, nil
}
