package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"spendly/internal/handlers"
	"spendly/internal/middlewares"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(middlewares.CorsMiddleware)
	r.Use(middlewares.RateLimit)
	r.Use(middlewares.Instrument)

	ch := handlers.NewCommonHandler(s.db)
	r.HandleFunc("/", ch.HelloWorldHandler)
	r.HandleFunc("/health", ch.HealthHandler)
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	s.registerAuthRoutes(r)
	s.registerCategoryRoutes(r)
	s.registerExpenseRoutes(r)
	s.registerDashboardRoutes(r)

	return r
}

func (s *Server) registerAuthRoutes(r *mux.Router) {
	uh := handlers.NewUserHandler(s.userService, s.otpService)
	ah := handlers.NewAuthHandler(s.authService)

	r.HandleFunc("/api/auth/register", uh.Register).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/auth/login", uh.Login).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/auth/forgot-password", uh.ForgotPassword).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/auth/reset-password", uh.ResetPassword).Methods("POST", "OPTIONS")
	r.Handle("/api/me", middlewares.AuthMiddleware(http.HandlerFunc(uh.GetMyProfile))).Methods("GET", "OPTIONS")
	r.Handle("/api/me", middlewares.AuthMiddleware(http.HandlerFunc(uh.UpdateMyProfile))).Methods("PATCH", "PUT", "OPTIONS")
	r.Handle("/api/me", middlewares.AuthMiddleware(http.HandlerFunc(uh.DeleteMyAccount))).Methods("DELETE", "OPTIONS")

	r.HandleFunc("/api/auth/success", ah.AuthSuccess).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/auth/error", ah.AuthError).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/auth/{provider}", ah.ProviderAuth).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/auth/{provider}/callback", ah.ProviderCallback).Methods("GET", "OPTIONS")
}

func (s *Server) registerCategoryRoutes(r *mux.Router) {
	ch := handlers.NewCategoryHandler(s.categoryService)
	r.Handle("/api/categories", middlewares.AuthMiddleware(http.HandlerFunc(ch.AddCategory))).Methods("POST", "OPTIONS")
	r.Handle("/api/categories", middlewares.AuthMiddleware(http.HandlerFunc(ch.GetCategories))).Methods("GET", "OPTIONS")
	r.Handle("/api/categories/options", middlewares.AuthMiddleware(http.HandlerFunc(ch.GetCategoryOptions))).Methods("GET", "OPTIONS")
	r.Handle("/api/categories/{id}", middlewares.AuthMiddleware(http.HandlerFunc(ch.GetCategory))).Methods("GET", "OPTIONS")
	r.Handle("/api/categories/{id}", middlewares.AuthMiddleware(http.HandlerFunc(ch.UpdateCategory))).Methods("PUT", "OPTIONS")
	r.Handle("/api/categories/{id}", middlewares.AuthMiddleware(http.HandlerFunc(ch.DeleteCategory))).Methods("DELETE", "OPTIONS")
}

func (s *Server) registerExpenseRoutes(r *mux.Router) {
	eh := handlers.NewExpenseHandler(s.expenseService)
	th := handlers.NewTagHandler(s.expenseService)

	r.Handle("/api/expenses", middlewares.AuthMiddleware(http.HandlerFunc(eh.AddExpense))).Methods("POST", "OPTIONS")
	r.Handle("/api/expenses", middlewares.AuthMiddleware(http.HandlerFunc(eh.ListExpenses))).Methods("GET", "OPTIONS")
	r.Handle("/api/expenses/recent", middlewares.AuthMiddleware(http.HandlerFunc(eh.RecentExpenses))).Methods("GET", "OPTIONS")
	r.Handle("/api/expenses/{id}", middlewares.AuthMiddleware(http.HandlerFunc(eh.GetExpense))).Methods("GET", "OPTIONS")
	r.Handle("/api/expenses/{id}", middlewares.AuthMiddleware(http.HandlerFunc(eh.UpdateExpense))).Methods("PUT", "OPTIONS")

	r.Handle("/api/tags", middlewares.AuthMiddleware(http.HandlerFunc(th.GetTags))).Methods("GET", "OPTIONS")
}

func (s *Server) registerDashboardRoutes(r *mux.Router) {
	dh := handlers.NewDashboardHandler(s.dashboardService)
	lh := handlers.NewLimitHandler(s.limitService)

	r.Handle("/api/dashboard", middlewares.AuthMiddleware(http.HandlerFunc(dh.GetDashboard))).Methods("GET", "OPTIONS")
	r.Handle("/api/limit", middlewares.AuthMiddleware(http.HandlerFunc(lh.GetWeeklyLimit))).Methods("GET", "OPTIONS")
}
