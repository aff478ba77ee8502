package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ParcelID      primitive.ObjectID `bson:"parcel_id" json:"parcel_id"`
	TransactionID string             `bson:"transaction_id" json:"transaction_id"`
	Price         int                `bson:"price" json:"price"`
	ProductName   string             `bson:"product_name" json:"product_name"`
	MarketName    string             `bson:"market_name" json:"market_name"`
	Email         string             `bson:"email" json:"email"`
	CreatedAt     primitive.DateTime `bson:"created_at" json:"created_at"`
}

var ErrParcelNotFound = errors.New("parcel not found")

// PaymentRecord marks the referenced parcel as paid and inserts the payment
// document in one transaction, so a failed insert cannot leave a paid parcel
// without a payment record.
func (db Database) PaymentRecord(ctx context.Context, p Payment) (InsertResult, error) {
	p.CreatedAt = primitive.NewDateTimeFromTime(time.Now())

	session, err := db.Client().StartSession()
	if err != nil {
		return InsertResult{}, errors.Wrapf(err, "error starting session to record Payment for ParcelID: %s", p.ParcelID.Hex())
	}
	defer session.EndSession(ctx)

	insertedID, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := db.Collection(CollectionProducts).UpdateOne(
			sc,
			bson.M{"_id": p.ParcelID},
			bson.M{"$set": bson.M{"payment_status": PaymentStatusPaid}},
		)
		if err != nil {
			return nil, errors.Wrapf(err, "error marking Product as paid, ParcelID: %s", p.ParcelID.Hex())
		}
		if res.MatchedCount == 0 {
			return nil, ErrParcelNotFound
		}

		r, err := db.Collection(CollectionPayments).InsertOne(sc, p)
		if err != nil {
			return nil, errors.Wrapf(err, "error inserting Payment for ParcelID: %s", p.ParcelID.Hex())
		}
		return r.InsertedID, nil
	})
	if err != nil {
		return InsertResult{}, errors.Wrapf(err, "error recording Payment for ParcelID: %s", p.ParcelID.Hex())
	}
	return InsertResult{InsertedID: insertedID.(primitive.ObjectID).Hex()}, nil
}

func (db Database) PaymentsFindByEmail(ctx context.Context, email string) ([]Payment, error) {
	var ps []Payment
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := db.Collection(CollectionPayments).Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "error getting cursor to find Payments with email: %s", email)
	}
	if err = cur.All(ctx, &ps); err != nil {
		return nil, errors.Wrapf(err, "error getting Payments from cursor, email: %s", email)
	}
	return ps, nil
}

func (db Database) PaymentsFindAll(ctx context.Context) ([]Payment, error) {
	var ps []Payment
	cur, err := db.Collection(CollectionPayments).Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "error getting cursor to find all Payments")
	}
	if err = cur.All(ctx, &ps); err != nil {
		return nil, errors.Wrap(err, "error getting all Payments from cursor")
	}
	return ps, nil
}
