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

type LimitRepository interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.WeeklyLimit, error)
	Upsert(ctx context.Context, userID primitive.ObjectID, amount float64) error
}

type limitRepository struct {
	db database.Service
}

func NewLimitRepository(db database.Service) LimitRepository {
	return &limitRepository{db: db}
}

func (r *limitRepository) collection() *mongo.Collection {
	return r.db.Client().Database(database.Name).Collection("weekly_limits")
}

func (r *limitRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.WeeklyLimit, error) {
	queryType := "findByUser"
	repository := "limit"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	var limit models.WeeklyLimit
	err := r.collection().FindOne(ctx, bson.M{"user_id": userID}).Decode(&limit)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return nil, err
	}
	return &limit, nil
}

func (r *limitRepository) Upsert(ctx context.Context, userID primitive.ObjectID, amount float64) error {
	queryType := "upsert"
	repository := "limit"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID}
	update := bson.M{"$set": bson.M{"amount": amount}, "$setOnInsert": bson.M{"user_id": userID}}
	_, err := r.collection().UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		return fmt.Errorf("failed to upsert weekly limit: %w", err)
	}
	return nil
}
