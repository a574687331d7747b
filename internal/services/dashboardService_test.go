package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spendly/internal/ledger"
	"spendly/internal/models"
)

func TestGetDashboard(t *testing.T) {
	userID := primitive.NewObjectID()
	food := primitive.NewObjectID()
	travel := primitive.NewObjectID()

	expenseRepo := &fakeExpenseRepo{expenses: []models.Expense{
		{ID: primitive.NewObjectID(), UserID: userID, CategoryID: food, Amount: 10, Date: "2024-03-01"},
		{ID: primitive.NewObjectID(), UserID: userID, CategoryID: food, Amount: 20, Date: "2024-03-15"},
		{ID: primitive.NewObjectID(), UserID: userID, CategoryID: travel, Amount: 5, Date: "2024-02-20"},
	}}
	categoryRepo := &fakeCategoryRepo{categories: []models.Category{
		{ID: food, UserID: userID, Name: "Groceries", Icon: "ShoppingCart", Color: "#FF6B6B"},
		{ID: travel, UserID: userID, Name: "Travel", Icon: "Plane", Color: "#45B7D1"},
	}}
	limitRepo := newFakeLimitRepo()
	limitRepo.Upsert(context.Background(), userID, 300)

	svc := NewDashboardService(expenseRepo, categoryRepo, NewLimitService(limitRepo), fixedNow)

	dash, err := svc.GetDashboard(context.Background(), userID)
	assert.NoError(t, err)

	assert.Equal(t, 30.0, dash.Month.CurrentTotal)
	assert.Equal(t, 5.0, dash.Month.LastTotal)
	assert.Equal(t, 25.0, dash.Month.Delta)
	assert.Equal(t, ledger.TrendIncreased, dash.Month.Trend)

	assert.Equal(t, 300.0, dash.WeeklyLimit)
	assert.Equal(t, 35.0, dash.TotalSpent)
	assert.Len(t, dash.WeeklyBuckets, 5)

	assert.Len(t, dash.CategoryTotals, 2)
	totals := map[string]float64{}
	for _, ct := range dash.CategoryTotals {
		totals[ct.Category.Name] = ct.Total
	}
	assert.Equal(t, 30.0, totals["Groceries"])
	assert.Equal(t, 5.0, totals["Travel"])

	assert.Equal(t, 2, dash.CategoryCount)
	recentCount := 0
	for _, g := range dash.Recent {
		recentCount += len(g.Expenses)
	}
	assert.Equal(t, 3, recentCount)
}

func TestGetDashboardDefaultLimit(t *testing.T) {
	userID := primitive.NewObjectID()
	svc := NewDashboardService(&fakeExpenseRepo{}, &fakeCategoryRepo{}, NewLimitService(newFakeLimitRepo()), fixedNow)

	dash, err := svc.GetDashboard(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, 500.0, dash.WeeklyLimit)
	assert.Zero(t, dash.TotalSpent)
	assert.Empty(t, dash.CategoryTotals)
	assert.Empty(t, dash.Recent)
}
