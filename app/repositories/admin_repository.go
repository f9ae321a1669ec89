package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/akxton/app/models"
)

// AdminRepository handles storage operations for Admin documents.
type AdminRepository struct {
	db *mongo.Database
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) collection() *mongo.Collection {
	return r.db.Collection(models.AdminsCollection)
}

// FindByName looks up an admin by its unique name.
func (r *AdminRepository) FindByName(ctx context.Context, name string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.collection().FindOne(ctx, bson.M{"name": name}).Decode(&admin); err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}

// FindByID looks up an admin by its hex identifier.
func (r *AdminRepository) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var admin models.Admin
	if err := r.collection().FindOne(ctx, bson.M{"_id": oid}).Decode(&admin); err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}

// Create persists a new admin. Returns ErrDuplicate when the name is taken.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	now := time.Now().UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	res, err := r.collection().InsertOne(ctx, admin)
	if err != nil {
		return translate(err)
	}
	admin.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}
