package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MessagesCollection = "messages"

// Message is a public contact-form submission. It references no other
// entity and is only readable by admins.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Number    string             `bson:"number" json:"number"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
