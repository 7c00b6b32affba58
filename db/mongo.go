package db

import (
	"context"
	"fmt"
	"go-blog-api/config"
	"go-blog-api/logger"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

func ConnectMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		logger.Log.WithError(err).Error("Failed to ping MongoDB")
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Log.WithField("database", cfg.Database).Info("MongoDB connection established successfully")
	return client, nil
}
