package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const AdminsCollection = "admins"

// Admin is an administrative principal. Admins live in their own collection
// and are not a kind of User; their tokens carry a distinct kind claim.
type Admin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
