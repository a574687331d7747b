package services

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/facebook"
	"github.com/markbates/goth/providers/google"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spendly/internal/models"
	"spendly/internal/repositories"
	"spendly/internal/utils"
)

const (
	MaxAge = 86400 * 30
	IsProd = false
)

type AuthService interface {
	HandleLogin(ctx context.Context, u goth.User) (string, error)
}

type authService struct {
	userRepo     repositories.UserRepository
	limitService LimitService
}

func NewAuthService(userRepo repositories.UserRepository, limitService LimitService) AuthService {
	return &authService{userRepo: userRepo, limitService: limitService}
}

func InitializeGoth() {
	googleClientID := os.Getenv("GOOGLE_CLIENT_ID")
	googleClientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	facebookClientID := os.Getenv("FACEBOOK_CLIENT_ID")
	facebookClientSecret := os.Getenv("FACEBOOK_CLIENT_SECRET")
	callbackBase := os.Getenv("OAUTH_CALLBACK_BASE")
	if callbackBase == "" {
		callbackBase = "http://localhost:8080"
	}

	sessionKey := os.Getenv("SESSION_KEY")

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.MaxAge(MaxAge)

	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = IsProd
	store.Options.SameSite = http.SameSiteLaxMode

	gothic.Store = store

	goth.UseProviders(
		google.New(googleClientID, googleClientSecret, callbackBase+"/api/auth/google/callback"),
		facebook.New(facebookClientID, facebookClientSecret, callbackBase+"/api/auth/facebook/callback"),
	)
	log.Info().Msg("Goth providers initialized")
}

// HandleLogin resolves or provisions the account behind an OAuth identity
// and returns a session token for it.
func (a *authService) HandleLogin(ctx context.Context, u goth.User) (string, error) {
	log.Info().Str("email", u.Email).Msg("Attempting to handle login for user")
	if u.Email == "" {
		log.Error().Msg("Missing email in Goth user data")
		return "", errors.New("missing Email")
	}

	user, err := a.userRepo.FindByEmail(ctx, u.Email)
	if err != nil {
		log.Info().Str("email", u.Email).Msg("User not found, creating new user")
		newUser := &models.User{
			ID:       primitive.NewObjectID(),
			Email:    u.Email,
			Username: u.NickName,
		}
		if _, err := a.userRepo.Create(ctx, newUser); err != nil {
			log.Error().Err(err).Str("email", u.Email).Msg("Error creating new user")
			return "", errors.New("error creating user")
		}
		user = newUser
		if err := a.limitService.EnsureDefault(ctx, user.ID); err != nil {
			log.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("Failed to seed default weekly limit")
		}
		log.Info().Str("email", u.Email).Str("userID", user.ID.Hex()).Msg("New user created successfully")
	} else {
		log.Info().Str("email", u.Email).Str("userID", user.ID.Hex()).Msg("User found in database")
	}

	token, err := utils.GenerateJWT(user.ID)
	if err != nil {
		log.Error().Err(err).Str("userID", user.ID.Hex()).Msg("Error generating JWT for user")
		return "", errors.New("error generating JWT")
	}

	return token, nil
}
