package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const UsersCollection = "users"

// User is a registered account. Email is stored lowercased and is unique.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Number    string             `bson:"number" json:"number"`
	Password  string             `bson:"password" json:"-"` // bcrypt hash, never serialised
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is the owner projection attached to populated documents.
type UserSummary struct {
	ID     primitive.ObjectID `bson:"_id" json:"_id"`
	Name   string             `bson:"name" json:"name"`
	Email  string             `bson:"email" json:"email"`
	Number string             `bson:"number" json:"number"`
}

// Summary returns the public projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Number: u.Number}
}
