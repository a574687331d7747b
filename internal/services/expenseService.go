package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"spendly/internal/ledger"
	"spendly/internal/metrics"
	"spendly/internal/models"
	"spendly/internal/repositories"
)

const recentExpenseLimit = 6

// ExpenseGroup is one day's worth of expenses, ready for display.
type ExpenseGroup struct {
	Label    string                 `json:"label"`
	Date     string                 `json:"date"`
	Expenses []models.ExpenseDetail `json:"expenses"`
}

// ExpenseListing is the filtered, sorted, day-grouped view of a user's
// expenses plus its totals.
type ExpenseListing struct {
	Total  float64        `json:"total"`
	Count  int            `json:"count"`
	Groups []ExpenseGroup `json:"groups"`
}

// ExpenseService defines the interface for expense-related business logic.
type ExpenseService interface {
	AddExpense(ctx context.Context, userID primitive.ObjectID, body models.AddExpenseRequestBody) (*models.Expense, error)
	GetExpense(ctx context.Context, userID, expenseID primitive.ObjectID) (*models.ExpenseDetail, error)
	UpdateExpense(ctx context.Context, userID, expenseID primitive.ObjectID, body models.UpdateExpenseRequestBody) (*models.Expense, error)
	ListExpenses(ctx context.Context, userID primitive.ObjectID, filter ledger.Filter) (*ExpenseListing, error)
	RecentExpenses(ctx context.Context, userID primitive.ObjectID) ([]models.ExpenseDetail, error)
	TagSuggestions(ctx context.Context, userID primitive.ObjectID) ([]string, error)
}

type expenseServiceImpl struct {
	expenseRepo  repositories.ExpenseRepository
	categoryRepo repositories.CategoryRepository
	now          func() time.Time
}

// NewExpenseService creates a new ExpenseService. now is the clock used for
// default dates, injectable for tests.
func NewExpenseService(expenseRepo repositories.ExpenseRepository, categoryRepo repositories.CategoryRepository, now func() time.Time) ExpenseService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &expenseServiceImpl{expenseRepo: expenseRepo, categoryRepo: categoryRepo, now: now}
}

// parseAmount accepts the raw amount string from the client. Anything that
// is not a finite non-negative number is rejected before the datastore is
// touched.
func parseAmount(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("amount is required")
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	if amount < 0 {
		return 0, fmt.Errorf("amount cannot be negative")
	}
	return amount, nil
}

func validateDate(date string) error {
	if _, err := time.ParseInLocation(ledger.DateLayout, date, time.UTC); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return nil
}

func (s *expenseServiceImpl) AddExpense(ctx context.Context, userID primitive.ObjectID, body models.AddExpenseRequestBody) (*models.Expense, error) {
	log.Debug().Str("userID", userID.Hex()).Msg("Attempting to add expense")

	amount, err := parseAmount(body.Amount)
	if err != nil {
		log.Warn().Err(err).Str("userID", userID.Hex()).Msg("Rejected expense amount")
		return nil, err
	}

	categoryID, err := primitive.ObjectIDFromHex(body.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category id")
	}
	if _, err := s.categoryRepo.FindByID(ctx, userID, categoryID); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("category not found")
		}
		log.Error().Err(err).Str("user_id", userID.Hex()).Str("category_id", categoryID.Hex()).Msg("Failed to validate category reference")
		return nil, fmt.Errorf("failed to validate category")
	}

	date := body.Date
	if date == "" {
		date = s.now().Format(ledger.DateLayout)
	} else if err := validateDate(date); err != nil {
		log.Warn().Err(err).Str("userID", userID.Hex()).Msg("Rejected expense date")
		return nil, err
	}

	now := primitive.NewDateTimeFromTime(s.now())
	expense := &models.Expense{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Tag:        strings.TrimSpace(body.Tag),
		Date:       date,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.expenseRepo.Create(ctx, expense)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Failed to insert expense")
		return nil, err
	}
	metrics.ExpensesCreatedTotal.Inc()
	log.Info().Str("userID", userID.Hex()).Str("expenseID", created.ID.Hex()).Float64("amount", created.Amount).Msg("Expense added successfully")
	return created, nil
}

func (s *expenseServiceImpl) GetExpense(ctx context.Context, userID, expenseID primitive.ObjectID) (*models.ExpenseDetail, error) {
	expense, err := s.expenseRepo.FindByID(ctx, userID, expenseID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("expense not found")
		}
		log.Error().Err(err).Str("expense_id", expenseID.Hex()).Str("user_id", userID.Hex()).Msg("Error finding expense by ID")
		return nil, fmt.Errorf("failed to retrieve expense")
	}

	detail := models.ExpenseDetail{Expense: *expense}
	if category, err := s.categoryRepo.FindByID(ctx, userID, expense.CategoryID); err == nil {
		detail.Category = category
	}
	return &detail, nil
}

func (s *expenseServiceImpl) buildExpenseUpdateFields(ctx context.Context, userID primitive.ObjectID, body models.UpdateExpenseRequestBody) (bson.M, error) {
	updateFields := bson.M{}
	if body.Amount != nil {
		amount, err := parseAmount(*body.Amount)
		if err != nil {
			return nil, err
		}
		updateFields["amount"] = amount
	}
	if body.Tag != nil {
		updateFields["tag"] = strings.TrimSpace(*body.Tag)
	}
	if body.CategoryID != nil {
		categoryID, err := primitive.ObjectIDFromHex(*body.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category id")
		}
		if _, err := s.categoryRepo.FindByID(ctx, userID, categoryID); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, fmt.Errorf("category not found")
			}
			return nil, fmt.Errorf("failed to validate category")
		}
		updateFields["category_id"] = categoryID
	}
	if body.Date != nil {
		if err := validateDate(*body.Date); err != nil {
			return nil, err
		}
		updateFields["date"] = *body.Date
	}
	return updateFields, nil
}

func (s *expenseServiceImpl) UpdateExpense(ctx context.Context, userID, expenseID primitive.ObjectID, body models.UpdateExpenseRequestBody) (*models.Expense, error) {
	log.Debug().Str("userID", userID.Hex()).Str("expenseID", expenseID.Hex()).Msg("Attempting to update expense")

	updateFields, err := s.buildExpenseUpdateFields(ctx, userID, body)
	if err != nil {
		log.Warn().Err(err).Str("userID", userID.Hex()).Str("expenseID", expenseID.Hex()).Msg("Rejected expense update payload")
		return nil, err
	}
	if len(updateFields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	updateFields["updated_at"] = primitive.NewDateTimeFromTime(s.now())

	result, err := s.expenseRepo.Update(ctx, userID, expenseID, updateFields)
	if err != nil {
		log.Error().Err(err).Str("expense_id", expenseID.Hex()).Str("user_id", userID.Hex()).Msg("Failed to update expense")
		return nil, fmt.Errorf("failed to update expense")
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("expense not found")
	}

	return s.expenseRepo.FindByID(ctx, userID, expenseID)
}

// ListExpenses loads the user's history and runs the filter engine over it.
func (s *expenseServiceImpl) ListExpenses(ctx context.Context, userID primitive.ObjectID, filter ledger.Filter) (*ExpenseListing, error) {
	expenses, err := s.expenseRepo.FindByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Error fetching expenses for listing")
		return nil, err
	}
	categories, err := s.categoryRepo.FindByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Error fetching categories for listing")
		return nil, err
	}

	byID := make(map[primitive.ObjectID]*models.Category, len(categories))
	names := make(map[primitive.ObjectID]string, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
		names[categories[i].ID] = categories[i].Name
	}

	matched := filter.Apply(expenses, names)

	details := make([]models.ExpenseDetail, 0, len(matched))
	for _, e := range matched {
		details = append(details, models.ExpenseDetail{Expense: e, Category: byID[e.CategoryID]})
	}

	groups := make([]ExpenseGroup, 0)
	for _, g := range ledger.GroupByDay(details) {
		groups = append(groups, ExpenseGroup{Label: g.Label, Date: g.Date, Expenses: g.Expenses})
	}

	return &ExpenseListing{
		Total:  ledger.Total(matched),
		Count:  len(matched),
		Groups: groups,
	}, nil
}

func (s *expenseServiceImpl) RecentExpenses(ctx context.Context, userID primitive.ObjectID) ([]models.ExpenseDetail, error) {
	expenses, err := s.expenseRepo.FindRecent(ctx, userID, recentExpenseLimit)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Error fetching recent expenses")
		return nil, err
	}
	categories, err := s.categoryRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}

	details := make([]models.ExpenseDetail, 0, len(expenses))
	for _, e := range expenses {
		details = append(details, models.ExpenseDetail{Expense: e, Category: byID[e.CategoryID]})
	}
	return details, nil
}

func (s *expenseServiceImpl) TagSuggestions(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	tags, err := s.expenseRepo.DistinctTags(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Error fetching tag suggestions")
		return nil, err
	}
	return tags, nil
}
