package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type RevocationRepository struct {
	coll *mongo.Collection
}

func NewRevocationRepository(db *mongo.Database) *RevocationRepository {
	return &RevocationRepository{coll: db.Collection(revokedCollection)}
}

func (r *RevocationRepository) Add(ctx context.Context, token string) error {
	_, err := r.coll.InsertOne(ctx, revokedDocument{Token: token, CreatedAt: time.Now().UTC()})
	return err
}

func (r *RevocationRepository) Exists(ctx context.Context, token string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"token": token}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
