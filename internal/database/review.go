package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	UserEmail string             `bson:"user_email" json:"user_email"`
	Comment   string             `bson:"comment" json:"comment"`
	Rating    int                `bson:"rating" json:"rating"`
	CreatedAt primitive.DateTime `bson:"created_at" json:"created_at"`
}

// ReviewInsert relies on the unique (product_id, user_email) index; callers
// detect the one-review-per-user rule through the duplicate key error instead
// of a racy existence check.
func (db Database) ReviewInsert(ctx context.Context, rv Review) (InsertResult, error) {
	rv.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	r, err := db.Collection(CollectionReviews).InsertOne(ctx, rv)
	if err != nil {
		return InsertResult{}, errors.Wrapf(err, "error inserting Review for ProductID: %s by: %s",
			rv.ProductID.Hex(), rv.UserEmail)
	}
	return InsertResult{InsertedID: r.InsertedID.(primitive.ObjectID).Hex()}, nil
}

func (db Database) ReviewsFindByProduct(ctx context.Context, productID string) ([]Review, error) {
	objID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating ObjectID from hex: %s", productID)
	}
	var rvs []Review
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := db.Collection(CollectionReviews).Find(ctx, bson.M{"product_id": objID}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "error getting cursor to find Reviews for ProductID: %s", productID)
	}
	if err = cur.All(ctx, &rvs); err != nil {
		return nil, errors.Wrapf(err, "error getting Reviews from cursor, ProductID: %s", productID)
	}
	return rvs, nil
}
