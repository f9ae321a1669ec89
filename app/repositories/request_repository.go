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

// RequestRepository handles storage operations for enquiry Requests.
type RequestRepository struct {
	db *mongo.Database
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) collection() *mongo.Collection {
	return r.db.Collection(models.RequestsCollection)
}

// Find returns the request for (property, sender), or ErrNotFound.
func (r *RequestRepository) Find(ctx context.Context, propertyID, senderID primitive.ObjectID) (*models.Request, error) {
	var request models.Request
	err := r.collection().FindOne(ctx, bson.M{"property": propertyID, "sender": senderID}).Decode(&request)
	if err != nil {
		return nil, translate(err)
	}
	return &request, nil
}

// FindByID looks up a request by its hex identifier.
func (r *RequestRepository) FindByID(ctx context.Context, id string) (*models.Request, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var request models.Request
	if err := r.collection().FindOne(ctx, bson.M{"_id": oid}).Decode(&request); err != nil {
		return nil, translate(err)
	}
	return &request, nil
}

// Create inserts an enquiry. The unique (property, sender) index makes a
// concurrent duplicate surface as ErrDuplicate.
func (r *RequestRepository) Create(ctx context.Context, request *models.Request) error {
	request.CreatedAt = time.Now().UTC()

	res, err := r.collection().InsertOne(ctx, request)
	if err != nil {
		return translate(err)
	}
	request.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Delete removes an enquiry by id.
func (r *RequestRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	return translate(err)
}

// ListBySender returns the user's outgoing enquiries, newest first.
func (r *RequestRepository) ListBySender(ctx context.Context, senderID primitive.ObjectID) ([]*models.Request, error) {
	return r.list(ctx, bson.M{"sender": senderID})
}

// ListByReceiver returns the enquiries addressed to the user, newest first.
func (r *RequestRepository) ListByReceiver(ctx context.Context, receiverID primitive.ObjectID) ([]*models.Request, error) {
	return r.list(ctx, bson.M{"receiver": receiverID})
}

func (r *RequestRepository) list(ctx context.Context, filter bson.M) ([]*models.Request, error) {
	cursor, err := r.collection().Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []*models.Request
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// CountByReceiver returns the number of enquiries addressed to the user.
func (r *RequestRepository) CountByReceiver(ctx context.Context, receiverID primitive.ObjectID) (int64, error) {
	return r.collection().CountDocuments(ctx, bson.M{"receiver": receiverID})
}

// Count returns the total number of enquiries.
func (r *RequestRepository) Count(ctx context.Context) (int64, error) {
	return r.collection().CountDocuments(ctx, bson.M{})
}

// DeleteByProperty removes every enquiry about the property.
// Part of the property-deletion cascade.
func (r *RequestRepository) DeleteByProperty(ctx context.Context, propertyID primitive.ObjectID) (int64, error) {
	res, err := r.collection().DeleteMany(ctx, bson.M{"property": propertyID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByUser removes every enquiry where the user appears as sender or
// receiver. Part of the user-deletion cascade.
func (r *RequestRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := r.collection().DeleteMany(ctx, bson.M{
		"$or": []bson.M{{"sender": userID}, {"receiver": userID}},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// LoadUserSummaries exposes the shared batch user projection for services
// that populate request entries.
func (r *RequestRepository) LoadUserSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	return loadUserSummaries(ctx, r.db, ids)
}
