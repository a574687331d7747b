package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spendly/internal/ledger"
	"spendly/internal/metrics"
	"spendly/internal/models"
	"spendly/internal/repositories"
)

// CategoryTotal is a category and its lifetime spend.
type CategoryTotal struct {
	Category models.Category `json:"category"`
	Total    float64         `json:"total"`
}

// Dashboard is the aggregate view backing the landing screen.
type Dashboard struct {
	WeeklyBuckets  []ledger.Bucket     `json:"weekly_buckets"`
	WeeklyLimit    float64             `json:"weekly_limit"`
	Month          ledger.MonthSummary `json:"month"`
	CategoryTotals []CategoryTotal     `json:"category_totals"`
	CategoryCount  int                 `json:"category_count"`
	Recent         []ExpenseGroup      `json:"recent"`
	TotalSpent     float64             `json:"total_spent"`
}

type DashboardService interface {
	GetDashboard(ctx context.Context, userID primitive.ObjectID) (*Dashboard, error)
}

type dashboardServiceImpl struct {
	expenseRepo  repositories.ExpenseRepository
	categoryRepo repositories.CategoryRepository
	limitService LimitService
	now          func() time.Time
}

func NewDashboardService(expenseRepo repositories.ExpenseRepository, categoryRepo repositories.CategoryRepository, limitService LimitService, now func() time.Time) DashboardService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &dashboardServiceImpl{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		limitService: limitService,
		now:          now,
	}
}

// GetDashboard loads the user's full history once and derives every widget
// from it in memory.
func (s *dashboardServiceImpl) GetDashboard(ctx context.Context, userID primitive.ObjectID) (*Dashboard, error) {
	expenses, err := s.expenseRepo.FindByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Error fetching expenses for dashboard")
		return nil, err
	}
	categories, err := s.categoryRepo.FindByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Error fetching categories for dashboard")
		return nil, err
	}

	today := s.now()
	totals := ledger.CategoryTotals(expenses)

	byID := make(map[primitive.ObjectID]*models.Category, len(categories))
	categoryTotals := make([]CategoryTotal, 0, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
		categoryTotals = append(categoryTotals, CategoryTotal{
			Category: categories[i],
			Total:    totals[categories[i].ID],
		})
	}

	// expenses arrive newest-first, so the recent widget is its head.
	recent := expenses
	if len(recent) > recentExpenseLimit {
		recent = recent[:recentExpenseLimit]
	}
	recentDetails := make([]models.ExpenseDetail, 0, len(recent))
	for _, e := range recent {
		recentDetails = append(recentDetails, models.ExpenseDetail{Expense: e, Category: byID[e.CategoryID]})
	}
	recentGroups := make([]ExpenseGroup, 0)
	for _, g := range ledger.GroupByDay(recentDetails) {
		recentGroups = append(recentGroups, ExpenseGroup{Label: g.Label, Date: g.Date, Expenses: g.Expenses})
	}

	limit, err := s.limitService.GetWeeklyLimit(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID.Hex()).Msg("Falling back to default weekly limit")
		limit = defaultWeeklyLimit
	}

	metrics.DashboardViewsTotal.Inc()
	return &Dashboard{
		WeeklyBuckets:  ledger.WeeklyBuckets(expenses, today),
		WeeklyLimit:    limit,
		Month:          ledger.MonthTotals(expenses, today),
		CategoryTotals: categoryTotals,
		CategoryCount:  len(categories),
		Recent:         recentGroups,
		TotalSpent:     ledger.Total(expenses),
	}, nil
}
