package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const SavedCollection = "saved"

// Saved is a (user, property) bookmark. The pair carries a unique compound
// index so concurrent toggles degrade to a rejected duplicate insert rather
// than a silent double row.
type Saved struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID     primitive.ObjectID `bson:"user" json:"userId"`
	PropertyID primitive.ObjectID `bson:"property" json:"propertyId"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// SavedEntry is a saved row with its property (and the property's owner)
// populated. Rows whose property has since been deleted are filtered out
// at read time and never reach this shape.
type SavedEntry struct {
	Saved    `bson:",inline"`
	Property *Property `bson:"-" json:"property"`
}
