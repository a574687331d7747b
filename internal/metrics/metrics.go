package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// User Activity Metrics
	NewUsersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_new_users_total",
		Help: "Total number of new user registrations.",
	})
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_login_attempts_total",
		Help: "Total number of login attempts (successful and failed).",
	}, []string{"status"}) // status: "success" or "failed"
	TotalUsersGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "app_users_total",
		Help: "Current number of registered users.",
	})

	// Feature Usage Metrics
	ExpensesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_expense_created_total",
		Help: "Total number of expenses recorded.",
	})
	CategoriesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_category_created_total",
		Help: "Total number of categories created.",
	})
	DashboardViewsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_dashboard_views_total",
		Help: "Total number of dashboard loads.",
	})
	PasswordResetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_password_resets_total",
		Help: "Total number of completed password resets.",
	})
)
