package services

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/akxton/app/models"
)

func mustOID(t *testing.T) primitive.ObjectID {
	t.Helper()
	return primitive.NewObjectID()
}

func testUser(t *testing.T, name string) *models.User {
	t.Helper()
	return &models.User{
		ID:     primitive.NewObjectID(),
		Name:   name,
		Email:  name + "@example.com",
		Number: "9876543210",
	}
}

func testProperty(t *testing.T, owner *models.User, price float64, images ...string) *models.Property {
	t.Helper()
	return &models.Property{
		ID:           primitive.NewObjectID(),
		UserID:       owner.ID,
		PropertyName: "Sunrise Residency",
		Address:      "Sector 9, Pune",
		Price:        price,
		Type:         "flat",
		Offer:        "sale",
		Status:       "ready to move",
		Furnished:    "furnished",
		Loan:         models.DefaultLoan,
		Carpet:       850,
		Description:  "2 BHK near the park",
		Images:       images,
	}
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
