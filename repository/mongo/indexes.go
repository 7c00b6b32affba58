package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates the unique username indexes and the lookup indexes
// used by the repositories. It is safe to call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		authorsCollection: {{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		readersCollection: {{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		postsCollection: {
			{Keys: bson.D{{Key: "author", Value: 1}}},
			{Keys: bson.D{{Key: "published", Value: 1}, {Key: "timestamp", Value: -1}}},
		},
		commentsCollection: {
			{Keys: bson.D{{Key: "post", Value: 1}}},
		},
		revokedCollection: {
			{Keys: bson.D{{Key: "token", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
