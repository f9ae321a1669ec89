package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates every index the collections rely on. Creation is
// idempotent; it runs at startup before the server accepts traffic.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for collection, models := range indexSpecs() {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("models: ensure indexes on %s: %w", collection, err)
		}
	}
	return nil
}

func indexSpecs() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		UsersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		AdminsCollection: {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		PropertiesCollection: {
			// Keyword lookup over the visible listing text.
			{Keys: bson.D{{Key: "address", Value: "text"}, {Key: "propertyName", Value: "text"}}},
			// Common filter combinations.
			{Keys: bson.D{{Key: "offer", Value: 1}, {Key: "type", Value: 1}, {Key: "price", Value: 1}}},
			{Keys: bson.D{{Key: "user", Value: 1}}},
			// Default newest-first ordering.
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		SavedCollection: {
			{
				Keys:    bson.D{{Key: "user", Value: 1}, {Key: "property", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		RequestsCollection: {
			{
				Keys:    bson.D{{Key: "property", Value: 1}, {Key: "sender", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "receiver", Value: 1}}},
		},
	}
}
