package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/akxton/app/models"
	"github.com/shashiranjanraj/akxton/pkg/metrics"
)

// PropertyRepository handles storage operations for Property documents.
type PropertyRepository struct {
	db *mongo.Database
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) collection() *mongo.Collection {
	return r.db.Collection(models.PropertiesCollection)
}

// Create persists a new listing.
func (r *PropertyRepository) Create(ctx context.Context, property *models.Property) error {
	defer metrics.ObserveQuery(models.PropertiesCollection, "insert", time.Now())

	now := time.Now().UTC()
	property.CreatedAt = now
	property.UpdatedAt = now
	if property.Images == nil {
		property.Images = []string{}
	}

	res, err := r.collection().InsertOne(ctx, property)
	if err != nil {
		return translate(err)
	}
	property.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID returns a single listing with its owner populated.
func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*models.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var property models.Property
	if err := r.collection().FindOne(ctx, bson.M{"_id": oid}).Decode(&property); err != nil {
		return nil, translate(err)
	}

	if err := attachOwners(ctx, r.db, []*models.Property{&property}); err != nil {
		return nil, err
	}
	return &property, nil
}

// Search runs the filter and the count against the same predicate, so the
// returned total is always consistent with the non-paginated match set.
func (r *PropertyRepository) Search(ctx context.Context, q SearchQuery) ([]*models.Property, int64, error) {
	defer metrics.ObserveQuery(models.PropertiesCollection, "search", time.Now())

	filter := q.Filter()

	cursor, err := r.collection().Find(ctx, filter, q.FindOptions())
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var properties []*models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, 0, err
	}

	total, err := r.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if err := attachOwners(ctx, r.db, properties); err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

// FindByOwner returns the owner's listings, newest first.
func (r *PropertyRepository) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Property, error) {
	cursor, err := r.collection().Find(ctx, bson.M{"user": ownerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var properties []*models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// All returns every listing with owners populated, newest first.
func (r *PropertyRepository) All(ctx context.Context) ([]*models.Property, error) {
	cursor, err := r.collection().Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var properties []*models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}

	if err := attachOwners(ctx, r.db, properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// Update replaces the stored listing with the given document.
func (r *PropertyRepository) Update(ctx context.Context, property *models.Property) error {
	defer metrics.ObserveQuery(models.PropertiesCollection, "update", time.Now())

	property.UpdatedAt = time.Now().UTC()
	_, err := r.collection().ReplaceOne(ctx, bson.M{"_id": property.ID}, property)
	return translate(err)
}

// Delete removes the listing record. Image cleanup is the cascade's job.
func (r *PropertyRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	return translate(err)
}

// CountByOwner returns the number of listings owned by the user.
func (r *PropertyRepository) CountByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	return r.collection().CountDocuments(ctx, bson.M{"user": ownerID})
}

// Count returns the total number of listings.
func (r *PropertyRepository) Count(ctx context.Context) (int64, error) {
	return r.collection().CountDocuments(ctx, bson.M{})
}

// FindByIDs batch-loads listings by identifier, preserving no order.
func (r *PropertyRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Property, error) {
	out := make(map[primitive.ObjectID]*models.Property, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := r.collection().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var properties []*models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}

	if err := attachOwners(ctx, r.db, properties); err != nil {
		return nil, err
	}
	for _, p := range properties {
		out[p.ID] = p
	}
	return out, nil
}
