package repositories

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"spendly/internal/database"
	"spendly/internal/models"
	"spendly/internal/utils"
)

type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	FindByID(ctx context.Context, userID, expenseID primitive.ObjectID) (*models.Expense, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Expense, error)
	FindRecent(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Expense, error)
	Update(ctx context.Context, userID, expenseID primitive.ObjectID, updateFields bson.M) (*mongo.UpdateResult, error)
	CountByCategory(ctx context.Context, userID, categoryID primitive.ObjectID) (int64, error)
	DistinctTags(ctx context.Context, userID primitive.ObjectID) ([]string, error)
}

type expenseRepository struct {
	db database.Service
}

func NewExpenseRepository(db database.Service) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) collection() *mongo.Collection {
	return r.db.Client().Database(database.Name).Collection("expenses")
}

func (r *expenseRepository) Create(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	queryType := "create"
	repository := "expense"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	_, err := r.collection().InsertOne(ctx, expense)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to insert expense: %w", err)
	}
	return expense, nil
}

func (r *expenseRepository) FindByID(ctx context.Context, userID, expenseID primitive.ObjectID) (*models.Expense, error) {
	queryType := "findByID"
	repository := "expense"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	var expense models.Expense
	filter := bson.M{"_id": expenseID, "user_id": userID}
	err := r.collection().FindOne(ctx, filter).Decode(&expense)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, err
	}
	return &expense, nil
}

// FindByUser returns the user's full history, newest insert first.
func (r *expenseRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Expense, error) {
	queryType := "findByUser"
	repository := "expense"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	var expenses []models.Expense
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("error fetching expenses: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &expenses); err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("error decoding expenses: %w", err)
	}
	return expenses, nil
}

func (r *expenseRepository) FindRecent(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Expense, error) {
	queryType := "findRecent"
	repository := "expense"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	var expenses []models.Expense
	filter := bson.M{"user_id": userID}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("error fetching recent expenses: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &expenses); err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("error decoding recent expenses: %w", err)
	}
	return expenses, nil
}

func (r *expenseRepository) Update(ctx context.Context, userID, expenseID primitive.ObjectID, updateFields bson.M) (*mongo.UpdateResult, error) {
	queryType := "update"
	repository := "expense"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	filter := bson.M{"_id": expenseID, "user_id": userID}
	update := bson.M{"$set": updateFields}
	result, err := r.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return result, nil
}

// CountByCategory reports how many expenses still reference a category.
func (r *expenseRepository) CountByCategory(ctx context.Context, userID, categoryID primitive.ObjectID) (int64, error) {
	queryType := "countByCategory"
	repository := "expense"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID, "category_id": categoryID}
	count, err := r.collection().CountDocuments(ctx, filter)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return 0, fmt.Errorf("failed to count expenses by category: %w", err)
	}
	return count, nil
}

// DistinctTags returns the user's distinct non-empty tags for autocomplete.
func (r *expenseRepository) DistinctTags(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	queryType := "distinctTags"
	repository := "expense"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID, "tag": bson.M{"$nin": bson.A{"", nil}}}
	values, err := r.collection().Distinct(ctx, "tag", filter)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, fmt.Errorf("failed to fetch distinct tags: %w", err)
	}

	tags := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags, nil
}
