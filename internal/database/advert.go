package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Advert struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ProductID   primitive.ObjectID `bson:"product_id,omitempty" json:"product_id,omitempty"`
	VendorEmail string             `bson:"vendor_email" json:"vendor_email"`
	Name        string             `bson:"name" json:"name"`
	MarketName  string             `bson:"market_name" json:"market_name"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   primitive.DateTime `bson:"created_at" json:"created_at"`
}

func (db Database) AdvertInsert(ctx context.Context, a Advert) (InsertResult, error) {
	a.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	r, err := db.Collection(CollectionAdvertisements).InsertOne(ctx, a)
	if err != nil {
		return InsertResult{}, errors.Wrapf(err, "error inserting Advert with name: %s", a.Name)
	}
	return InsertResult{InsertedID: r.InsertedID.(primitive.ObjectID).Hex()}, nil
}

func (db Database) AdvertFindOne(ctx context.Context, advertID string) (Advert, error) {
	var a Advert
	objID, err := primitive.ObjectIDFromHex(advertID)
	if err != nil {
		return a, errors.Wrapf(err, "error creating ObjectID from hex: %s", advertID)
	}
	err = db.Collection(CollectionAdvertisements).FindOne(ctx, bson.M{"_id": objID}).Decode(&a)
	return a, errors.Wrapf(err, "error finding Advert with ID: %s", advertID)
}

func (db Database) AdvertsFindAll(ctx context.Context) ([]Advert, error) {
	var as []Advert
	cur, err := db.Collection(CollectionAdvertisements).Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "error getting cursor to find all Adverts")
	}
	if err = cur.All(ctx, &as); err != nil {
		return nil, errors.Wrap(err, "error getting all Adverts from cursor")
	}
	return as, nil
}

func (db Database) AdvertStatusUpdate(ctx context.Context, advertID string, status string) (UpdateResult, error) {
	objID, err := primitive.ObjectIDFromHex(advertID)
	if err != nil {
		return UpdateResult{}, errors.Wrapf(err, "error creating ObjectID from hex: %s", advertID)
	}
	res, err := db.Collection(CollectionAdvertisements).UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return UpdateResult{}, errors.Wrapf(err, "error updating status of Advert with ID: %s to: %s", advertID, status)
	}
	return UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (db Database) AdvertDelete(ctx context.Context, advertID string) (DeleteResult, error) {
	objID, err := primitive.ObjectIDFromHex(advertID)
	if err != nil {
		return DeleteResult{}, errors.Wrapf(err, "error creating ObjectID from hex: %s", advertID)
	}
	res, err := db.Collection(CollectionAdvertisements).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return DeleteResult{}, errors.Wrapf(err, "error deleting Advert with ID: %s", advertID)
	}
	return DeleteResult{DeletedCount: res.DeletedCount}, nil
}
