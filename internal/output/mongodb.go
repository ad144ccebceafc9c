// internal/output/mongodb.go
package output

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/valpere/StageScrapexter/internal/config"
	"github.com/valpere/StageScrapexter/pkg/types"
)

// MongoDBWriter publishes productions to a MongoDB collection, replacing
// each document by production id, and appends one run-metadata document per
// snapshot.
type MongoDBWriter struct {
	client     *mongo.Client
	collection *mongo.Collection
	runs       *mongo.Collection
}

// NewMongoDBWriter connects to the configured deployment.
func NewMongoDBWriter(cfg config.MongoConfig) (*MongoDBWriter, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("MongoDB URI is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("MongoDB database name is required")
	}
	collection := cfg.Collection
	if collection == "" {
		collection = "productions"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)

	return &MongoDBWriter{
		client:     client,
		collection: db.Collection(collection),
		runs:       db.Collection(collection + "_runs"),
	}, nil
}

// Name implements Writer.
func (w *MongoDBWriter) Name() string { return "mongodb" }

// Write replaces every production document and records the run.
func (w *MongoDBWriter) Write(ctx context.Context, snapshot *types.Snapshot) error {
	if _, err := w.runs.InsertOne(ctx, bson.M{
		"generated_at": snapshot.Meta.GeneratedAt,
		"item_count":   snapshot.Meta.Count,
	}); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	for _, item := range snapshot.Items {
		doc := bson.M{
			"_id":          item.ID,
			"production":   item,
			"generated_at": snapshot.Meta.GeneratedAt,
		}

		if _, err := w.collection.ReplaceOne(ctx,
			bson.M{"_id": item.ID}, doc, options.Replace().SetUpsert(true),
		); err != nil {
			return fmt.Errorf("failed to upsert production %s: %w", item.ID, err)
		}
	}

	return nil
}

// Close disconnects from the deployment.
func (w *MongoDBWriter) Close() error {
	if w.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := w.client.Disconnect(ctx)
	w.client = nil
	return err
}
