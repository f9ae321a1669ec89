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

// MessageRepository handles storage operations for contact Messages.
type MessageRepository struct {
	db *mongo.Database
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) collection() *mongo.Collection {
	return r.db.Collection(models.MessagesCollection)
}

// Create persists a contact-form submission.
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	message.CreatedAt = time.Now().UTC()

	res, err := r.collection().InsertOne(ctx, message)
	if err != nil {
		return translate(err)
	}
	message.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// All returns every message, newest first.
func (r *MessageRepository) All(ctx context.Context) ([]*models.Message, error) {
	cursor, err := r.collection().Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// FindByID looks up a message by its hex identifier.
func (r *MessageRepository) FindByID(ctx context.Context, id string) (*models.Message, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var message models.Message
	if err := r.collection().FindOne(ctx, bson.M{"_id": oid}).Decode(&message); err != nil {
		return nil, translate(err)
	}
	return &message, nil
}

// Delete removes a message by id.
func (r *MessageRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	return translate(err)
}

// Count returns the total number of messages.
func (r *MessageRepository) Count(ctx context.Context) (int64, error) {
	return r.collection().CountDocuments(ctx, bson.M{})
}
