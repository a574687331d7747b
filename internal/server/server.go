package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	_ "github.com/joho/godotenv/autoload"

	"spendly/internal/database"
	"spendly/internal/repositories"
	"spendly/internal/services"
)

type Server struct {
	port             int
	httpServer       *http.Server
	db               database.Service
	userService      services.UserService
	authService      services.AuthService
	otpService       services.OTPService
	categoryService  services.CategoryService
	expenseService   services.ExpenseService
	dashboardService services.DashboardService
	limitService     services.LimitService
}

func NewServer() *Server {
	portStr := os.Getenv("PORT")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Warn().Str("port", portStr).Msg("Invalid PORT environment variable. Using default 8080.")
		port = 8080
	}

	db := database.New()

	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	expenseRepo := repositories.NewExpenseRepository(db)
	limitRepo := repositories.NewLimitRepository(db)
	otpRepo := repositories.NewOTPRepository(db, userRepo)

	if err := userRepo.EnsureIndexes(); err != nil {
		log.Warn().Err(err).Msg("Failed to ensure user indexes")
	}

	limitService := services.NewLimitService(limitRepo)
	emailService := services.NewEmailService()

	s := &Server{
		port:             port,
		db:               db,
		userService:      services.NewUserService(userRepo, limitService),
		authService:      services.NewAuthService(userRepo, limitService),
		otpService:       services.NewOTPService(userRepo, otpRepo, emailService),
		categoryService:  services.NewCategoryService(categoryRepo, expenseRepo),
		expenseService:   services.NewExpenseService(expenseRepo, categoryRepo, nil),
		dashboardService: services.NewDashboardService(expenseRepo, categoryRepo, limitService, nil),
		limitService:     limitService,
	}

	services.InitializeGoth()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	log.Info().Int("port", s.port).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}

	if err := s.db.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Error closing database connection")
	}

	log.Info().Msg("Server exiting")
	done <- true
}
