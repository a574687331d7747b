package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Expense is the canonical record shape. Date is a calendar date in
// YYYY-MM-DD form and is user-editable; CreatedAt is server-assigned and
// breaks ordering ties between same-day entries.
type Expense struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"user_id" bson:"user_id"`
	CategoryID primitive.ObjectID `json:"category_id" bson:"category_id"`
	Amount     float64            `json:"amount" bson:"amount"`
	Tag        string             `json:"tag,omitempty" bson:"tag,omitempty"`
	Date       string             `json:"date" bson:"date"`
	CreatedAt  primitive.DateTime `json:"created_at" bson:"created_at"`
	UpdatedAt  primitive.DateTime `json:"updated_at" bson:"updated_at"`
}

// ExpenseDetail is an Expense with its category joined in for display.
type ExpenseDetail struct {
	Expense
	Category *Category `json:"category,omitempty"`
}

// AddExpenseRequestBody carries the amount as the raw input string so that
// malformed numbers fail validation instead of silently decoding to zero.
type AddExpenseRequestBody struct {
	Amount     string `json:"amount"`
	Tag        string `json:"tag,omitempty"`
	CategoryID string `json:"category_id"`
	Date       string `json:"date,omitempty"`
}

type UpdateExpenseRequestBody struct {
	Amount     *string `json:"amount,omitempty"`
	Tag        *string `json:"tag,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
	Date       *string `json:"date,omitempty"`
}
