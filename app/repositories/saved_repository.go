package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/akxton/app/models"
)

// SavedRepository handles storage operations for Saved bookmarks.
type SavedRepository struct {
	db *mongo.Database
}

func NewSavedRepository(db *mongo.Database) *SavedRepository {
	return &SavedRepository{db: db}
}

func (r *SavedRepository) collection() *mongo.Collection {
	return r.db.Collection(models.SavedCollection)
}

// Find returns the bookmark for (user, property), or ErrNotFound.
func (r *SavedRepository) Find(ctx context.Context, userID, propertyID primitive.ObjectID) (*models.Saved, error) {
	var saved models.Saved
	err := r.collection().FindOne(ctx, bson.M{"user": userID, "property": propertyID}).Decode(&saved)
	if err != nil {
		return nil, translate(err)
	}
	return &saved, nil
}

// Create inserts a bookmark. The unique (user, property) index turns a
// concurrent double-toggle into ErrDuplicate instead of a second row.
func (r *SavedRepository) Create(ctx context.Context, saved *models.Saved) error {
	saved.CreatedAt = time.Now().UTC()

	res, err := r.collection().InsertOne(ctx, saved)
	if err != nil {
		return translate(err)
	}
	saved.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Delete removes a bookmark by id. Deleting an already-deleted row is a no-op.
func (r *SavedRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	return translate(err)
}

// ListByUser returns the user's bookmarks, newest first.
func (r *SavedRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Saved, error) {
	cursor, err := r.collection().Find(ctx, bson.M{"user": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var saved []*models.Saved
	if err := cursor.All(ctx, &saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// CountByUser returns the number of bookmarks the user holds.
func (r *SavedRepository) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.collection().CountDocuments(ctx, bson.M{"user": userID})
}

// DeleteByProperty removes every bookmark pointing at the property.
// Part of the property-deletion cascade.
func (r *SavedRepository) DeleteByProperty(ctx context.Context, propertyID primitive.ObjectID) (int64, error) {
	res, err := r.collection().DeleteMany(ctx, bson.M{"property": propertyID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByUser removes every bookmark created by the user.
// Part of the user-deletion cascade.
func (r *SavedRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := r.collection().DeleteMany(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
