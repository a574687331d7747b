package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"spendly/internal/models"
)

// fakeExpenseRepo is an in-memory ExpenseRepository for service tests.
type fakeExpenseRepo struct {
	expenses    []models.Expense
	createCalls int
}

func (f *fakeExpenseRepo) Create(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	f.createCalls++
	f.expenses = append(f.expenses, *expense)
	return expense, nil
}

func (f *fakeExpenseRepo) FindByID(ctx context.Context, userID, expenseID primitive.ObjectID) (*models.Expense, error) {
	for i := range f.expenses {
		if f.expenses[i].ID == expenseID && f.expenses[i].UserID == userID {
			e := f.expenses[i]
			return &e, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeExpenseRepo) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range f.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExpenseRepo) FindRecent(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Expense, error) {
	all, _ := f.FindByUser(ctx, userID)
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeExpenseRepo) Update(ctx context.Context, userID, expenseID primitive.ObjectID, updateFields bson.M) (*mongo.UpdateResult, error) {
	for i := range f.expenses {
		if f.expenses[i].ID == expenseID && f.expenses[i].UserID == userID {
			if v, ok := updateFields["amount"].(float64); ok {
				f.expenses[i].Amount = v
			}
			if v, ok := updateFields["tag"].(string); ok {
				f.expenses[i].Tag = v
			}
			if v, ok := updateFields["category_id"].(primitive.ObjectID); ok {
				f.expenses[i].CategoryID = v
			}
			if v, ok := updateFields["date"].(string); ok {
				f.expenses[i].Date = v
			}
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return &mongo.UpdateResult{}, nil
}

func (f *fakeExpenseRepo) CountByCategory(ctx context.Context, userID, categoryID primitive.ObjectID) (int64, error) {
	var n int64
	for _, e := range f.expenses {
		if e.UserID == userID && e.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (f *fakeExpenseRepo) DistinctTags(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	seen := map[string]bool{}
	var tags []string
	for _, e := range f.expenses {
		if e.UserID == userID && e.Tag != "" && !seen[e.Tag] {
			seen[e.Tag] = true
			tags = append(tags, e.Tag)
		}
	}
	return tags, nil
}

// fakeCategoryRepo is an in-memory CategoryRepository for service tests.
type fakeCategoryRepo struct {
	categories []models.Category
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	f.categories = append(f.categories, *category)
	return category, nil
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, userID, categoryID primitive.ObjectID) (*models.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID == categoryID && f.categories[i].UserID == userID {
			c := f.categories[i]
			return &c, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeCategoryRepo) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Category, error) {
	var out []models.Category
	for _, c := range f.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, userID, categoryID primitive.ObjectID, updateFields bson.M) (*mongo.UpdateResult, error) {
	for i := range f.categories {
		if f.categories[i].ID == categoryID && f.categories[i].UserID == userID {
			if v, ok := updateFields["name"].(string); ok {
				f.categories[i].Name = v
			}
			if v, ok := updateFields["icon"].(string); ok {
				f.categories[i].Icon = v
			}
			if v, ok := updateFields["color"].(string); ok {
				f.categories[i].Color = v
			}
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return &mongo.UpdateResult{}, nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, userID, categoryID primitive.ObjectID) (*mongo.DeleteResult, error) {
	for i := range f.categories {
		if f.categories[i].ID == categoryID && f.categories[i].UserID == userID {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return &mongo.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &mongo.DeleteResult{}, nil
}

// fakeLimitRepo is an in-memory LimitRepository for service tests.
type fakeLimitRepo struct {
	limits map[primitive.ObjectID]float64
}

func newFakeLimitRepo() *fakeLimitRepo {
	return &fakeLimitRepo{limits: map[primitive.ObjectID]float64{}}
}

func (f *fakeLimitRepo) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.WeeklyLimit, error) {
	amount, ok := f.limits[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &models.WeeklyLimit{UserID: userID, Amount: amount}, nil
}

func (f *fakeLimitRepo) Upsert(ctx context.Context, userID primitive.ObjectID, amount float64) error {
	f.limits[userID] = amount
	return nil
}
