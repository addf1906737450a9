package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Media is an uploaded image stored in MongoDB, binary data included.
type Media struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    uint               `json:"user_id" bson:"user_id"`
	MediaType string             `json:"media_type" bson:"media_type"`
	Data      []byte             `json:"-" bson:"data"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
