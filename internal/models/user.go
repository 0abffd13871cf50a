package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a staff account (technician or admin). Clients authenticate
// separately and live in their own collection.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email           string             `bson:"email" json:"email"`
	FirstName       string             `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName        string             `bson:"last_name,omitempty" json:"last_name,omitempty"`
	ProfileImageURL string             `bson:"profile_image_url,omitempty" json:"profile_image_url,omitempty"`
	Role            string             `bson:"role" json:"role"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
