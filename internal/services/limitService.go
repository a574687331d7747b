package services

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"spendly/internal/repositories"
)

const defaultWeeklyLimit = 500

// LimitService exposes the per-user weekly spending target.
type LimitService interface {
	GetWeeklyLimit(ctx context.Context, userID primitive.ObjectID) (float64, error)
	EnsureDefault(ctx context.Context, userID primitive.ObjectID) error
}

type limitServiceImpl struct {
	limitRepo repositories.LimitRepository
}

func NewLimitService(limitRepo repositories.LimitRepository) LimitService {
	return &limitServiceImpl{limitRepo: limitRepo}
}

func (s *limitServiceImpl) GetWeeklyLimit(ctx context.Context, userID primitive.ObjectID) (float64, error) {
	limit, err := s.limitRepo.FindByUser(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return defaultWeeklyLimit, nil
		}
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Error fetching weekly limit")
		return 0, err
	}
	return limit.Amount, nil
}

// EnsureDefault seeds the default target for a fresh account.
func (s *limitServiceImpl) EnsureDefault(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.limitRepo.FindByUser(ctx, userID)
	if err == nil {
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return err
	}
	return s.limitRepo.Upsert(ctx, userID, defaultWeeklyLimit)
}
