package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const RoleCustomer = "customer"

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email        string             `bson:"email" json:"email"`
	Role         string             `bson:"role" json:"role"`
	SellerStatus string             `bson:"sellerStatus,omitempty" json:"sellerStatus,omitempty"`
	CreatedAt    primitive.DateTime `bson:"created_at" json:"created_at"`
	LastLoggedIn primitive.DateTime `bson:"last_loggedIn" json:"last_loggedIn"`
}

// UserUpsertByEmail is the login touch: an existing user gets a fresh
// last_loggedIn, a new one is inserted with the customer defaults. The store's
// native upsert keeps the operation atomic.
func (db Database) UserUpsertByEmail(ctx context.Context, email string) (UpdateResult, error) {
	now := primitive.NewDateTimeFromTime(time.Now())
	res, err := db.Collection(CollectionUsers).UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{
			"$set": bson.M{"last_loggedIn": now},
			"$setOnInsert": bson.M{
				"email":      email,
				"role":       RoleCustomer,
				"created_at": now,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return UpdateResult{}, errors.Wrapf(err, "error upserting User with email: %s", email)
	}
	ur := UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		ur.UpsertedID = oid.Hex()
	}
	return ur, nil
}

func (db Database) UserFindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := db.Collection(CollectionUsers).FindOne(ctx, bson.M{"email": email}).Decode(&u)
	return u, errors.Wrapf(err, "error finding User with email: %s", email)
}

func (db Database) UsersFindAll(ctx context.Context) ([]User, error) {
	var us []User
	cur, err := db.Collection(CollectionUsers).Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "error getting cursor to find all Users")
	}
	if err = cur.All(ctx, &us); err != nil {
		return nil, errors.Wrap(err, "error getting all Users from cursor")
	}
	return us, nil
}

func (db Database) UserRoleUpdate(ctx context.Context, email string, role string) (UpdateResult, error) {
	res, err := db.Collection(CollectionUsers).UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": role}},
	)
	if err != nil {
		return UpdateResult{}, errors.Wrapf(err, "error updating role of User with email: %s to: %s", email, role)
	}
	return UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (db Database) UserSellerStatusUpdate(ctx context.Context, email string, status string) (UpdateResult, error) {
	res, err := db.Collection(CollectionUsers).UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"sellerStatus": status}},
	)
	if err != nil {
		return UpdateResult{}, errors.Wrapf(err, "error updating sellerStatus of User with email: %s to: %s", email, status)
	}
	return UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}
