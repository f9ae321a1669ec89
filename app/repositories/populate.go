package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/akxton/app/models"
)

// loadUserSummaries batch-loads the public projection of the given users.
// Missing IDs (deleted users) are simply absent from the result map.
func loadUserSummaries(ctx context.Context, db *mongo.Database, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	out := make(map[primitive.ObjectID]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := db.Collection(models.UsersCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var summary models.UserSummary
		if err := cursor.Decode(&summary); err != nil {
			return nil, err
		}
		out[summary.ID] = summary
	}
	return out, cursor.Err()
}

// attachOwners populates Owner on each property from one $in query.
func attachOwners(ctx context.Context, db *mongo.Database, properties []*models.Property) error {
	ids := make([]primitive.ObjectID, 0, len(properties))
	seen := make(map[primitive.ObjectID]bool, len(properties))
	for _, p := range properties {
		if !seen[p.UserID] {
			seen[p.UserID] = true
			ids = append(ids, p.UserID)
		}
	}

	owners, err := loadUserSummaries(ctx, db, ids)
	if err != nil {
		return err
	}

	for _, p := range properties {
		if owner, ok := owners[p.UserID]; ok {
			o := owner
			p.Owner = &o
		}
	}
	return nil
}
