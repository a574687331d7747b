package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spendly/internal/models"
)

func newCategoryFixture() (*fakeExpenseRepo, CategoryService, primitive.ObjectID) {
	expenseRepo := &fakeExpenseRepo{}
	categoryRepo := &fakeCategoryRepo{}
	svc := NewCategoryService(categoryRepo, expenseRepo)
	return expenseRepo, svc, primitive.NewObjectID()
}

func TestAddCategory(t *testing.T) {
	_, svc, userID := newCategoryFixture()

	created, err := svc.AddCategory(context.Background(), userID, models.Category{
		Name:  " Groceries ",
		Icon:  "ShoppingCart",
		Color: "#FF6B6B",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Groceries", created.Name)
	assert.Equal(t, userID, created.UserID)
	assert.False(t, created.ID.IsZero())
}

func TestAddCategoryValidation(t *testing.T) {
	_, svc, userID := newCategoryFixture()

	cases := []models.Category{
		{Name: "", Icon: "ShoppingCart", Color: "#FF6B6B"},
		{Name: "Groceries", Icon: "NotAnIcon", Color: "#FF6B6B"},
		{Name: "Groceries", Icon: "ShoppingCart", Color: "red"},
		{Name: "Groceries", Icon: "ShoppingCart", Color: "#FFF"},
	}
	for _, c := range cases {
		_, err := svc.AddCategory(context.Background(), userID, c)
		assert.Error(t, err, "category %+v", c)
	}
}

func TestAddCategoryAllowsDuplicateNames(t *testing.T) {
	_, svc, userID := newCategoryFixture()

	payload := models.Category{Name: "Groceries", Icon: "ShoppingCart", Color: "#FF6B6B"}
	first, err := svc.AddCategory(context.Background(), userID, payload)
	assert.NoError(t, err)

	second, err := svc.AddCategory(context.Background(), userID, payload)
	assert.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestUpdateCategory(t *testing.T) {
	_, svc, userID := newCategoryFixture()

	created, err := svc.AddCategory(context.Background(), userID, models.Category{
		Name: "Groceries", Icon: "ShoppingCart", Color: "#FF6B6B",
	})
	assert.NoError(t, err)

	name := "Food"
	icon := "Utensils"
	updated, err := svc.UpdateCategory(context.Background(), userID, created.ID, models.CategoryUpdate{
		Name: &name,
		Icon: &icon,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Food", updated.Name)
	assert.Equal(t, "Utensils", updated.Icon)
	assert.Equal(t, "#FF6B6B", updated.Color)
}

func TestUpdateCategoryRejectsBadIcon(t *testing.T) {
	_, svc, userID := newCategoryFixture()

	created, err := svc.AddCategory(context.Background(), userID, models.Category{
		Name: "Groceries", Icon: "ShoppingCart", Color: "#FF6B6B",
	})
	assert.NoError(t, err)

	icon := "Spaceship"
	_, err = svc.UpdateCategory(context.Background(), userID, created.ID, models.CategoryUpdate{Icon: &icon})
	assert.Error(t, err)
}

func TestDeleteCategoryRefusedWhileReferenced(t *testing.T) {
	expenseRepo, svc, userID := newCategoryFixture()

	created, err := svc.AddCategory(context.Background(), userID, models.Category{
		Name: "Groceries", Icon: "ShoppingCart", Color: "#FF6B6B",
	})
	assert.NoError(t, err)

	expenseRepo.expenses = append(expenseRepo.expenses, models.Expense{
		ID: primitive.NewObjectID(), UserID: userID, CategoryID: created.ID, Amount: 5, Date: "2024-03-01",
	})

	ok, err := svc.DeleteCategory(context.Background(), userID, created.ID)
	assert.False(t, ok)
	assert.Error(t, err)

	// After the last referencing expense is gone the delete goes through.
	expenseRepo.expenses = nil
	ok, err = svc.DeleteCategory(context.Background(), userID, created.ID)
	assert.True(t, ok)
	assert.NoError(t, err)
}
