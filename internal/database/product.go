package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ProductStatusPending  = "pending"
	ProductStatusApproved = "approved"
	ProductStatusRejected = "rejected"

	PaymentStatusPaid = "paid"
)

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	VendorEmail   string             `bson:"vendor_email" json:"vendor_email"`
	Name          string             `bson:"name" json:"name"`
	MarketName    string             `bson:"market_name" json:"market_name"`
	Price         int                `bson:"price" json:"price"`
	PriceHistory  []PricePoint       `bson:"price_history" json:"price_history"`
	Status        string             `bson:"status" json:"status"`
	Feedback      string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
	PaymentStatus string             `bson:"payment_status,omitempty" json:"payment_status,omitempty"`
	CreatedAt     primitive.DateTime `bson:"created_at" json:"created_at"`
}

type PricePoint struct {
	Price int                `bson:"price" json:"price"`
	Date  primitive.DateTime `bson:"date" json:"date"`
}

func (db Database) ProductInsert(ctx context.Context, p Product) (InsertResult, error) {
	now := primitive.NewDateTimeFromTime(time.Now())
	p.Status = ProductStatusPending
	p.PriceHistory = []PricePoint{{Price: p.Price, Date: now}}
	p.CreatedAt = now

	r, err := db.Collection(CollectionProducts).InsertOne(ctx, p)
	if err != nil {
		return InsertResult{}, errors.Wrapf(err, "error inserting Product with name: %s", p.Name)
	}
	return InsertResult{InsertedID: r.InsertedID.(primitive.ObjectID).Hex()}, nil
}

func (db Database) ProductFindOne(ctx context.Context, productID string) (Product, error) {
	var p Product
	// No shape validation happens before this conversion; a malformed ID
	// surfaces as a generic store error, not a not-found.
	objID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return p, errors.Wrapf(err, "error creating ObjectID from hex: %s", productID)
	}
	err = db.Collection(CollectionProducts).FindOne(ctx, bson.M{"_id": objID}).Decode(&p)
	return p, errors.Wrapf(err, "error finding Product with ID: %s", productID)
}

func (db Database) ProductsFindAll(ctx context.Context) ([]Product, error) {
	var ps []Product
	cur, err := db.Collection(CollectionProducts).Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "error getting cursor to find all Products")
	}
	if err = cur.All(ctx, &ps); err != nil {
		return nil, errors.Wrap(err, "error getting all Products from cursor")
	}
	return ps, nil
}

// ProductsFindApproved returns approved listings ordered by most recent price
// history entry, newest first.
func (db Database) ProductsFindApproved(ctx context.Context, limit int64) ([]Product, error) {
	var ps []Product
	opts := options.Find().
		SetSort(bson.D{{Key: "price_history.date", Value: -1}}).
		SetLimit(limit)
	cur, err := db.Collection(CollectionProducts).Find(ctx, bson.M{"status": ProductStatusApproved}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "error getting cursor to find approved Products, limit: %d", limit)
	}
	if err = cur.All(ctx, &ps); err != nil {
		return nil, errors.Wrapf(err, "error getting approved Products from cursor, limit: %d", limit)
	}
	return ps, nil
}

func (db Database) ProductsFindByVendor(ctx context.Context, email string) ([]Product, error) {
	var ps []Product
	cur, err := db.Collection(CollectionProducts).Find(ctx, bson.M{"vendor_email": email})
	if err != nil {
		return nil, errors.Wrapf(err, "error getting cursor to find Products with vendor email: %s", email)
	}
	if err = cur.All(ctx, &ps); err != nil {
		return nil, errors.Wrapf(err, "error getting Products from cursor, vendor email: %s", email)
	}
	return ps, nil
}

// ProductStatusUpdate sets the approval status. Transitions are unguarded:
// any current status can be overwritten with any other.
func (db Database) ProductStatusUpdate(ctx context.Context, productID string, status string) (UpdateResult, error) {
	objID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return UpdateResult{}, errors.Wrapf(err, "error creating ObjectID from hex: %s", productID)
	}
	res, err := db.Collection(CollectionProducts).UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return UpdateResult{}, errors.Wrapf(err, "error updating status of Product with ID: %s to: %s", productID, status)
	}
	return UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (db Database) ProductReject(ctx context.Context, productID string, feedback string) (UpdateResult, error) {
	objID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return UpdateResult{}, errors.Wrapf(err, "error creating ObjectID from hex: %s", productID)
	}
	res, err := db.Collection(CollectionProducts).UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{
			"status":   ProductStatusRejected,
			"feedback": feedback,
		}},
	)
	if err != nil {
		return UpdateResult{}, errors.Wrapf(err, "error rejecting Product with ID: %s", productID)
	}
	return UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// ProductUpdate applies a partial update of the listing's mutable fields.
// A price change is also appended to the price history series.
func (db Database) ProductUpdate(ctx context.Context, productID string, name string, price *int) (UpdateResult, error) {
	objID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return UpdateResult{}, errors.Wrapf(err, "error creating ObjectID from hex: %s", productID)
	}

	set := bson.M{}
	if name != "" {
		set["name"] = name
	}
	update := bson.M{}
	if price != nil {
		set["price"] = *price
		update["$push"] = bson.M{"price_history": PricePoint{
			Price: *price,
			Date:  primitive.NewDateTimeFromTime(time.Now()),
		}}
	}
	if len(set) == 0 {
		return UpdateResult{}, nil
	}
	update["$set"] = set

	res, err := db.Collection(CollectionProducts).UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return UpdateResult{}, errors.Wrapf(err, "error updating Product with ID: %s", productID)
	}
	return UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (db Database) ProductDelete(ctx context.Context, productID string) (DeleteResult, error) {
	objID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return DeleteResult{}, errors.Wrapf(err, "error creating ObjectID from hex: %s", productID)
	}
	res, err := db.Collection(CollectionProducts).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return DeleteResult{}, errors.Wrapf(err, "error deleting Product with ID: %s", productID)
	}
	return DeleteResult{DeletedCount: res.DeletedCount}, nil
}
