package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Announcement represents an announcement document in the MongoDB database.
// The expiration and start dates are stored exactly as the caller supplied
// them (ISO 8601 strings); created_at is generated server-side in RFC 3339
// UTC so the list sort order matches chronological order.
type Announcement struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Message        string             `bson:"message" json:"message"`
	ExpirationDate string             `bson:"expiration_date" json:"expiration_date"`
	StartDate      string             `bson:"start_date,omitempty" json:"start_date,omitempty"`
	CreatedBy      string             `bson:"created_by" json:"created_by"`
	CreatedAt      string             `bson:"created_at" json:"created_at"`
}
