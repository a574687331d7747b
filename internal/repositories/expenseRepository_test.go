package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spendly/internal/database"
	"spendly/internal/models"
)

func TestExpenseRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	db := database.New()
	defer db.Close(context.Background())

	expenseRepo := NewExpenseRepository(db)
	userID := primitive.NewObjectID()
	categoryID := primitive.NewObjectID()

	t.Run("Create and Find Expense", func(t *testing.T) {
		expense := &models.Expense{
			ID:         primitive.NewObjectID(),
			UserID:     userID,
			CategoryID: categoryID,
			Amount:     12.5,
			Tag:        "lunch",
			Date:       "2024-03-20",
		}

		created, err := expenseRepo.Create(context.Background(), expense)
		assert.NoError(t, err)
		assert.NotNil(t, created)

		found, err := expenseRepo.FindByID(context.Background(), userID, expense.ID)
		assert.NoError(t, err)
		assert.Equal(t, 12.5, found.Amount)

		all, err := expenseRepo.FindByUser(context.Background(), userID)
		assert.NoError(t, err)
		assert.Len(t, all, 1)

		count, err := expenseRepo.CountByCategory(context.Background(), userID, categoryID)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)

		tags, err := expenseRepo.DistinctTags(context.Background(), userID)
		assert.NoError(t, err)
		assert.Equal(t, []string{"lunch"}, tags)
	})

	t.Run("Update Expense", func(t *testing.T) {
		expense := &models.Expense{
			ID:         primitive.NewObjectID(),
			UserID:     userID,
			CategoryID: categoryID,
			Amount:     3,
			Date:       "2024-03-21",
		}
		_, err := expenseRepo.Create(context.Background(), expense)
		assert.NoError(t, err)

		result, err := expenseRepo.Update(context.Background(), userID, expense.ID, bson.M{"amount": 4.5})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), result.ModifiedCount)

		found, err := expenseRepo.FindByID(context.Background(), userID, expense.ID)
		assert.NoError(t, err)
		assert.Equal(t, 4.5, found.Amount)
	})

	t.Run("Other User Cannot See Expenses", func(t *testing.T) {
		other := primitive.NewObjectID()
		all, err := expenseRepo.FindByUser(context.Background(), other)
		assert.NoError(t, err)
		assert.Empty(t, all)
	})
}
