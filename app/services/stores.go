package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/akxton/app/models"
	"github.com/shashiranjanraj/akxton/app/repositories"
)

// Store interfaces mirror the repositories. Services depend on these so the
// domain logic is testable without a running database.

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	All(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
}

type AdminStore interface {
	FindByName(ctx context.Context, name string) (*models.Admin, error)
	FindByID(ctx context.Context, id string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
}

type PropertyStore interface {
	Create(ctx context.Context, property *models.Property) error
	FindByID(ctx context.Context, id string) (*models.Property, error)
	Search(ctx context.Context, q repositories.SearchQuery) ([]*models.Property, int64, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Property, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Property, error)
	All(ctx context.Context) ([]*models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type SavedStore interface {
	Find(ctx context.Context, userID, propertyID primitive.ObjectID) (*models.Saved, error)
	Create(ctx context.Context, saved *models.Saved) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Saved, error)
	CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	DeleteByProperty(ctx context.Context, propertyID primitive.ObjectID) (int64, error)
}

type RequestStore interface {
	Find(ctx context.Context, propertyID, senderID primitive.ObjectID) (*models.Request, error)
	FindByID(ctx context.Context, id string) (*models.Request, error)
	Create(ctx context.Context, request *models.Request) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListBySender(ctx context.Context, senderID primitive.ObjectID) ([]*models.Request, error)
	ListByReceiver(ctx context.Context, receiverID primitive.ObjectID) ([]*models.Request, error)
	CountByReceiver(ctx context.Context, receiverID primitive.ObjectID) (int64, error)
	Count(ctx context.Context) (int64, error)
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	DeleteByProperty(ctx context.Context, propertyID primitive.ObjectID) (int64, error)
	LoadUserSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error)
}

type MessageStore interface {
	Create(ctx context.Context, message *models.Message) error
	All(ctx context.Context) ([]*models.Message, error)
	FindByID(ctx context.Context, id string) (*models.Message, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}
