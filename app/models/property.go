package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const PropertiesCollection = "properties"

// MaxImages caps the image list per property, enforced at creation and on
// update (combined count after appending new uploads).
const MaxImages = 5

// Enum values for the property classification fields.
var (
	PropertyTypes   = []string{"flat", "house", "shop", "plot", "villa", "pg"}
	OfferTypes      = []string{"sale", "resale", "rent"}
	StatusValues    = []string{"ready to move", "under construction", "new launch"}
	FurnishedValues = []string{"furnished", "semi-furnished", "unfurnished"}
	LoanValues      = []string{"available", "not available"}
	DefaultLoan     = "not available"
)

// ValidEnum reports whether v is one of allowed.
func ValidEnum(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// Boolish decodes a JSON boolean that may arrive as a literal bool or the
// strings "true"/"false"/"1"/"0", depending on the transport encoding.
// This is the single coercion point for amenity flags.
type Boolish bool

func (b *Boolish) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true", `"true"`, `"1"`, "1":
		*b = true
	case "false", `"false"`, `"0"`, "0", "null", `""`:
		*b = false
	default:
		return fmt.Errorf("cannot decode %s as boolean", data)
	}
	return nil
}

func (b Boolish) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

// ParseBoolish applies the same coercion to form-encoded string values.
func ParseBoolish(v string) bool {
	return v == "true" || v == "1"
}

// Amenities is the fixed set of 12 independent flags.
type Amenities struct {
	Lift          Boolish `bson:"lift" json:"lift"`
	SecurityGuard Boolish `bson:"securityGuard" json:"securityGuard"`
	PlayGround    Boolish `bson:"playGround" json:"playGround"`
	Garden        Boolish `bson:"garden" json:"garden"`
	WaterSupply   Boolish `bson:"waterSupply" json:"waterSupply"`
	PowerBackup   Boolish `bson:"powerBackup" json:"powerBackup"`
	ParkingArea   Boolish `bson:"parkingArea" json:"parkingArea"`
	Gym           Boolish `bson:"gym" json:"gym"`
	ShoppingMall  Boolish `bson:"shoppingMall" json:"shoppingMall"`
	Hospital      Boolish `bson:"hospital" json:"hospital"`
	School        Boolish `bson:"school" json:"school"`
	MarketArea    Boolish `bson:"marketArea" json:"marketArea"`
}

// Property is a listing document. Owner is populated at read time from the
// users collection and never persisted with the listing.
type Property struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID       primitive.ObjectID `bson:"user" json:"userId"`
	Owner        *UserSummary       `bson:"-" json:"user,omitempty"`
	PropertyName string             `bson:"propertyName" json:"propertyName"`
	Address      string             `bson:"address" json:"address"`
	Price        float64            `bson:"price" json:"price"`
	Type         string             `bson:"type" json:"type"`
	Offer        string             `bson:"offer" json:"offer"`
	Status       string             `bson:"status" json:"status"`
	Furnished    string             `bson:"furnished" json:"furnished"`
	Bhk          int                `bson:"bhk,omitempty" json:"bhk,omitempty"`
	Deposit      float64            `bson:"deposit" json:"deposit"`
	Bedroom      int                `bson:"bedroom,omitempty" json:"bedroom,omitempty"`
	Bathroom     int                `bson:"bathroom,omitempty" json:"bathroom,omitempty"`
	Balcony      int                `bson:"balcony" json:"balcony"`
	Carpet       int                `bson:"carpet" json:"carpet"`
	Age          int                `bson:"age" json:"age"`
	TotalFloors  int                `bson:"totalFloors,omitempty" json:"totalFloors,omitempty"`
	RoomFloor    int                `bson:"roomFloor,omitempty" json:"roomFloor,omitempty"`
	Loan         string             `bson:"loan" json:"loan"`
	Description  string             `bson:"description" json:"description"`
	Images       []string           `bson:"images" json:"images"`
	Amenities    Amenities          `bson:"amenities" json:"amenities"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PropertySummary is the projection attached to populated saved/request rows.
type PropertySummary struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	PropertyName string             `bson:"propertyName" json:"propertyName"`
	Address      string             `bson:"address" json:"address"`
	Price        float64            `bson:"price" json:"price"`
	Offer        string             `bson:"offer" json:"offer"`
	Type         string             `bson:"type" json:"type"`
	Images       []string           `bson:"images" json:"images"`
}

// Summary returns the compact projection of the property.
func (p *Property) Summary() PropertySummary {
	return PropertySummary{
		ID:           p.ID,
		PropertyName: p.PropertyName,
		Address:      p.Address,
		Price:        p.Price,
		Offer:        p.Offer,
		Type:         p.Type,
		Images:       p.Images,
	}
}
