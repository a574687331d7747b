package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"spendly/internal/icons"
	"spendly/internal/metrics"
	"spendly/internal/models"
	"spendly/internal/repositories"
)

// CategoryService defines the interface for category-related business logic.
type CategoryService interface {
	AddCategory(ctx context.Context, userID primitive.ObjectID, category models.Category) (*models.Category, error)
	GetCategories(ctx context.Context, userID primitive.ObjectID) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, userID, categoryID primitive.ObjectID) (*models.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID primitive.ObjectID, updatePayload models.CategoryUpdate) (*models.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID primitive.ObjectID) (bool, error)
}

// categoryServiceImpl implements the CategoryService interface.
type categoryServiceImpl struct {
	categoryRepo repositories.CategoryRepository
	expenseRepo  repositories.ExpenseRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repositories.CategoryRepository, expenseRepo repositories.ExpenseRepository) CategoryService {
	return &categoryServiceImpl{categoryRepo: categoryRepo, expenseRepo: expenseRepo}
}

func validateCategoryFields(name, icon, color string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("category name is required")
	}
	if !icons.Valid(icon) {
		return fmt.Errorf("unknown icon %q", icon)
	}
	if !icons.ValidColor(color) {
		return fmt.Errorf("invalid color %q, expected #RRGGBB", color)
	}
	return nil
}

func (s *categoryServiceImpl) AddCategory(ctx context.Context, userID primitive.ObjectID, category models.Category) (*models.Category, error) {
	log.Debug().Str("userID", userID.Hex()).Str("categoryName", category.Name).Msg("Attempting to add category")

	category.Name = strings.TrimSpace(category.Name)
	if err := validateCategoryFields(category.Name, category.Icon, category.Color); err != nil {
		log.Warn().Err(err).Str("userID", userID.Hex()).Msg("Rejected category payload")
		return nil, err
	}

	category.ID = primitive.NewObjectID()
	category.UserID = userID

	createdCategory, err := s.categoryRepo.Create(ctx, &category)
	if err != nil {
		log.Error().Err(err).Str("category_name", category.Name).Str("user_id", userID.Hex()).Msg("Failed to insert category")
		return nil, err
	}
	metrics.CategoriesCreatedTotal.Inc()
	log.Info().Str("userID", userID.Hex()).Str("categoryID", createdCategory.ID.Hex()).Str("categoryName", createdCategory.Name).Msg("Category added successfully")
	return createdCategory, nil
}

func (s *categoryServiceImpl) GetCategories(ctx context.Context, userID primitive.ObjectID) ([]models.Category, error) {
	categories, err := s.categoryRepo.FindByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Error finding categories")
		return nil, err
	}
	return categories, nil
}

func (s *categoryServiceImpl) GetCategoryByID(ctx context.Context, userID, categoryID primitive.ObjectID) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, userID, categoryID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			log.Warn().Str("userID", userID.Hex()).Str("categoryID", categoryID.Hex()).Msg("Category not found")
			return nil, fmt.Errorf("category not found")
		}
		log.Error().Err(err).Str("category_id", categoryID.Hex()).Str("user_id", userID.Hex()).Msg("Error finding category by ID")
		return nil, fmt.Errorf("failed to retrieve category")
	}
	return category, nil
}

func (s *categoryServiceImpl) buildCategoryUpdateFields(updatePayload models.CategoryUpdate) (bson.M, error) {
	updateFields := bson.M{}
	if updatePayload.Name != nil {
		name := strings.TrimSpace(*updatePayload.Name)
		if name == "" {
			return nil, fmt.Errorf("category name is required")
		}
		updateFields["name"] = name
	}
	if updatePayload.Icon != nil {
		if !icons.Valid(*updatePayload.Icon) {
			return nil, fmt.Errorf("unknown icon %q", *updatePayload.Icon)
		}
		updateFields["icon"] = *updatePayload.Icon
	}
	if updatePayload.Color != nil {
		if !icons.ValidColor(*updatePayload.Color) {
			return nil, fmt.Errorf("invalid color %q, expected #RRGGBB", *updatePayload.Color)
		}
		updateFields["color"] = *updatePayload.Color
	}
	return updateFields, nil
}

func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, userID, categoryID primitive.ObjectID, updatePayload models.CategoryUpdate) (*models.Category, error) {
	log.Debug().Str("userID", userID.Hex()).Str("categoryID", categoryID.Hex()).Msg("Attempting to update category")
	updateFields, err := s.buildCategoryUpdateFields(updatePayload)
	if err != nil {
		log.Warn().Err(err).Str("userID", userID.Hex()).Str("categoryID", categoryID.Hex()).Msg("Rejected category update payload")
		return nil, err
	}

	if len(updateFields) == 0 {
		log.Warn().Str("userID", userID.Hex()).Str("categoryID", categoryID.Hex()).Msg("No fields to update for category")
		return nil, fmt.Errorf("no fields to update")
	}

	result, err := s.categoryRepo.Update(ctx, userID, categoryID, updateFields)
	if err != nil {
		log.Error().Err(err).Str("category_id", categoryID.Hex()).Str("user_id", userID.Hex()).Msg("Failed to update category")
		return nil, fmt.Errorf("failed to update category")
	}

	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("category not found")
	}

	return s.categoryRepo.FindByID(ctx, userID, categoryID)
}

func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, userID, categoryID primitive.ObjectID) (bool, error) {
	log.Debug().Str("userID", userID.Hex()).Str("categoryID", categoryID.Hex()).Msg("Attempting to delete category")

	count, err := s.expenseRepo.CountByCategory(ctx, userID, categoryID)
	if err != nil {
		log.Error().Err(err).Str("category_id", categoryID.Hex()).Str("user_id", userID.Hex()).Msg("Failed to count expenses for category")
		return false, err
	}
	if count > 0 {
		log.Warn().Str("userID", userID.Hex()).Str("categoryID", categoryID.Hex()).Int64("expenses", count).Msg("Refusing to delete category still in use")
		return false, fmt.Errorf("category is still referenced by %d expenses", count)
	}

	result, err := s.categoryRepo.Delete(ctx, userID, categoryID)
	if err != nil {
		log.Error().Err(err).Str("category_id", categoryID.Hex()).Str("user_id", userID.Hex()).Msg("Failed to delete category")
		return false, err
	}

	if result.DeletedCount == 0 {
		log.Warn().Str("userID", userID.Hex()).Str("categoryID", categoryID.Hex()).Msg("Category not found or unauthorized to delete")
		return false, fmt.Errorf("category not found or unauthorized to delete")
	}
	log.Info().Str("userID", userID.Hex()).Str("categoryID", categoryID.Hex()).Msg("Category deleted successfully")
	return true, nil
}
