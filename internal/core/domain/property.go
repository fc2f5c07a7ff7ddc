package domain

import (
	"errors"
	"time"
)

// MaxPropertyImages is the upper bound of images accepted per listing,
// both on create and per update request.
const MaxPropertyImages = 5

var ErrPropertyNotFound = errors.New("property not found")

// Property is the core aggregate: a rental listing owned by a single user.
// UserID scopes every mutation; a lookup that misses the {_id, userId}
// filter is reported as not-found, never as forbidden.
type Property struct {
	ID          string    `json:"_id" bson:"_id,omitempty"`
	UserID      string    `json:"userId" bson:"user_id"`
	Title       string    `json:"title" bson:"title"`
	Type        string    `json:"type" bson:"type"`
	Location    string    `json:"location" bson:"location"`
	Price       string    `json:"price" bson:"price"`
	Deposit     string    `json:"deposit" bson:"deposit"`
	Description string    `json:"description" bson:"description"`
	Beds        string    `json:"beds" bson:"beds"`
	Baths       string    `json:"baths" bson:"baths"`
	SqFt        string    `json:"sqFt" bson:"sq_ft"`
	Gender      string    `json:"gender" bson:"gender"`
	Furnishing  string    `json:"furnishing" bson:"furnishing"`
	Phone       string    `json:"phone" bson:"phone"`
	Amenities   []string  `json:"amenities" bson:"amenities"`
	Images      []string  `json:"images" bson:"images"`
	Verified    bool      `json:"verified" bson:"verified"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
