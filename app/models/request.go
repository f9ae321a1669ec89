package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const RequestsCollection = "requests"

// Request is an enquiry from a user to a property's owner. Receiver is
// frozen at creation time: it records the owner as of when the enquiry was
// sent and is never rewritten. (property, sender) is unique.
type Request struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PropertyID primitive.ObjectID `bson:"property" json:"propertyId"`
	SenderID   primitive.ObjectID `bson:"sender" json:"senderId"`
	ReceiverID primitive.ObjectID `bson:"receiver" json:"receiverId"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// RequestEntry is a request with its references populated for list views.
// Sender is set on received lists, Receiver on sent lists.
type RequestEntry struct {
	Request  `bson:",inline"`
	Property *PropertySummary `bson:"-" json:"property,omitempty"`
	Sender   *UserSummary     `bson:"-" json:"sender,omitempty"`
	Receiver *UserSummary     `bson:"-" json:"receiver,omitempty"`
}
