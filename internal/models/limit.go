package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// WeeklyLimit is a per-user spending target shown alongside the weekly
// totals. One document per user.
type WeeklyLimit struct {
	ID     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID primitive.ObjectID `json:"user_id" bson:"user_id"`
	Amount float64            `json:"amount" bson:"amount"`
}
