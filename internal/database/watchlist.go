package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WatchlistEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ProductName string             `bson:"product_name" json:"product_name"`
	MarketName  string             `bson:"market_name" json:"market_name"`
	Date        string             `bson:"date" json:"date"`
	Email       string             `bson:"email" json:"email"`
	CreatedAt   primitive.DateTime `bson:"created_at" json:"created_at"`
}

func (db Database) WatchlistInsert(ctx context.Context, e WatchlistEntry) (InsertResult, error) {
	e.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	r, err := db.Collection(CollectionWatchlist).InsertOne(ctx, e)
	if err != nil {
		return InsertResult{}, errors.Wrapf(err, "error inserting WatchlistEntry for: %s by: %s", e.ProductName, e.Email)
	}
	return InsertResult{InsertedID: r.InsertedID.(primitive.ObjectID).Hex()}, nil
}
