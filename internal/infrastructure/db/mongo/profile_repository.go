package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	customerCollection = "customer_profiles"
	adminCollection    = "admin_profiles"
)

// MongoProfileRepository stores the role marker records. One document per
// identity per role; membership is an existence query.
type MongoProfileRepository struct {
	customers *mongo.Collection
	admins    *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *MongoProfileRepository {
	return &MongoProfileRepository{
		customers: db.Collection(customerCollection),
		admins:    db.Collection(adminCollection),
	}
}

type mongoProfile struct {
	IdentityID string `bson:"identity_id"`
	CreatedAt  int64  `bson:"created_at"`
}

func (r *MongoProfileRepository) CreateCustomer(ctx context.Context, identityID string) error {
	return createProfile(ctx, r.customers, identityID)
}

func (r *MongoProfileRepository) CreateAdmin(ctx context.Context, identityID string) error {
	return createProfile(ctx, r.admins, identityID)
}

func (r *MongoProfileRepository) HasCustomer(ctx context.Context, identityID string) (bool, error) {
	return profileExists(ctx, r.customers, identityID)
}

func (r *MongoProfileRepository) HasAdmin(ctx context.Context, identityID string) (bool, error) {
	return profileExists(ctx, r.admins, identityID)
}

func createProfile(ctx context.Context, coll *mongo.Collection, identityID string) error {
	doc := mongoProfile{
		IdentityID: identityID,
		CreatedAt:  time.Now().UTC().Unix(),
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func profileExists(ctx context.Context, coll *mongo.Collection, identityID string) (bool, error) {
	n, err := coll.CountDocuments(ctx, bson.M{"identity_id": identityID}, countLimitOne())
	if err != nil {
		return false, fmt.Errorf("count profiles: %w", err)
	}
	return n > 0, nil
}

func countLimitOne() *options.CountOptions {
	return options.Count().SetLimit(1)
}
