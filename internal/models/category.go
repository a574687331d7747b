package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	Name      string             `json:"name" bson:"name"`
	Icon      string             `json:"icon" bson:"icon"`
	Color     string             `json:"color" bson:"color"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

type CategoryUpdate struct {
	Name  *string `json:"name,omitempty" bson:"name,omitempty"`
	Icon  *string `json:"icon,omitempty" bson:"icon,omitempty"`
	Color *string `json:"color,omitempty" bson:"color,omitempty"`
}
