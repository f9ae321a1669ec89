package repositories

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/akxton/app/models"
	"github.com/shashiranjanraj/akxton/pkg/metrics"
)

// UserRepository handles storage operations for User documents.
type UserRepository struct {
	db *mongo.Database
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) collection() *mongo.Collection {
	return r.db.Collection(models.UsersCollection)
}

// FindByEmail looks up a user by their (lowercased) email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection().FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByID looks up a user by its hex identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var user models.User
	if err := r.collection().FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Create persists a new user. Returns ErrDuplicate when the email is taken.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	defer metrics.ObserveQuery(models.UsersCollection, "insert", time.Now())

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.collection().InsertOne(ctx, user)
	if err != nil {
		return translate(err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Update replaces the mutable fields of an existing user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()

	_, err := r.collection().UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"name":      user.Name,
		"email":     user.Email,
		"number":    user.Number,
		"password":  user.Password,
		"updatedAt": user.UpdatedAt,
	}})
	return translate(err)
}

// Delete removes the user record itself (cascades are the caller's job).
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	return translate(err)
}

// All returns every user, newest first.
func (r *UserRepository) All(ctx context.Context) ([]*models.User, error) {
	defer metrics.ObserveQuery(models.UsersCollection, "find", time.Now())

	cursor, err := r.collection().Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Count returns the total number of users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.collection().CountDocuments(ctx, bson.M{})
}
