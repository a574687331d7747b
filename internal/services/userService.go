package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"spendly/internal/metrics"
	"spendly/internal/models"
	"spendly/internal/repositories"
	"spendly/internal/utils"
)

// UserService defines the interface for user-related business logic.
type UserService interface {
	RegisterUser(ctx context.Context, user *models.User) (*models.User, error)
	LoginUser(ctx context.Context, creds *models.Login) (string, error)
	GetUserProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateUserProfile(ctx context.Context, userID primitive.ObjectID, updatePayload *models.UserProfileUpdate) (*models.User, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
	DeleteUser(ctx context.Context, userID primitive.ObjectID) error
	GetTotalUsers(ctx context.Context) (int64, error)
}

// userService implements UserService using a UserRepository.
type userService struct {
	userRepo     repositories.UserRepository
	limitService LimitService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, limitService LimitService) UserService {
	s := &userService{
		userRepo:     userRepo,
		limitService: limitService,
	}
	go s.updateTotalUsersPeriodically()
	return s
}

func (s *userService) GetTotalUsers(ctx context.Context) (int64, error) {
	return s.userRepo.CountAll(ctx)
}

func (s *userService) updateTotalUsersPeriodically() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		count, err := s.GetTotalUsers(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Error updating total users gauge")
		} else {
			metrics.TotalUsersGauge.Set(float64(count))
		}
		cancel()
	}
}

func (s *userService) RegisterUser(ctx context.Context, user *models.User) (*models.User, error) {
	log.Debug().Str("email", user.Email).Msg("Attempting to register user")
	if user.Username == "" || user.Email == "" || user.Password == "" {
		log.Warn().Msg("Username, email, and password are required for registration")
		return nil, fmt.Errorf("username, email, and password are required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), 8)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password during registration")
		return nil, fmt.Errorf("failed to hash password")
	}

	user.Password = string(hashedPassword)
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	createdUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Warn().Str("email", user.Email).Msg("Email already exists during user insertion")
			return nil, fmt.Errorf("email already exists")
		}
		return nil, err
	}

	if err := s.limitService.EnsureDefault(ctx, createdUser.ID); err != nil {
		log.Warn().Err(err).Str("user_id", createdUser.ID.Hex()).Msg("Failed to seed default weekly limit")
	}

	createdUser.Password = "" // Clear password before returning
	metrics.NewUsersTotal.Inc()
	log.Info().Str("user_id", createdUser.ID.Hex()).Str("email", createdUser.Email).Msg("User registered successfully")

	if count, err := s.GetTotalUsers(ctx); err == nil {
		metrics.TotalUsersGauge.Set(float64(count))
	}
	return createdUser, nil
}

func (s *userService) LoginUser(ctx context.Context, creds *models.Login) (string, error) {
	log.Debug().Str("email", creds.Email).Msg("Attempting user login")
	user, err := s.userRepo.FindByEmail(ctx, creds.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			log.Warn().Str("email", creds.Email).Msg("Invalid credentials during login attempt")
			metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
			return "", fmt.Errorf("invalid credentials")
		}
		log.Error().Err(err).Str("email", creds.Email).Msg("Error finding user for login")
		return "", fmt.Errorf("internal server error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		log.Warn().Str("email", creds.Email).Msg("Invalid credentials (password mismatch) during login attempt")
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("invalid credentials")
	}

	token, err := utils.GenerateJWT(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("Could not generate token for user")
		return "", fmt.Errorf("could not generate token")
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	log.Info().Str("user_id", user.ID.Hex()).Msg("User logged in successfully")
	return token, nil
}

func (s *userService) GetUserProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			log.Warn().Str("user_id", userID.Hex()).Msg("User not found for profile fetch")
			return nil, fmt.Errorf("user not found")
		}
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Failed to fetch user profile")
		return nil, fmt.Errorf("failed to fetch user profile")
	}

	user.Password = "" // Clear password before returning
	return user, nil
}

func (s *userService) UpdateUserProfile(ctx context.Context, userID primitive.ObjectID, updatePayload *models.UserProfileUpdate) (*models.User, error) {
	log.Debug().Str("userID", userID.Hex()).Msg("Attempting to update user profile")
	updateFields := bson.M{}
	if updatePayload.Username != "" {
		updateFields["username"] = updatePayload.Username
	}
	if updatePayload.Email != nil {
		currentUser, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Failed to verify current user data for profile update")
			return nil, fmt.Errorf("failed to verify current user data: %w", err)
		}

		if currentUser.Email != *updatePayload.Email {
			existingUser, err := s.userRepo.FindByEmail(ctx, *updatePayload.Email)
			if err == nil && existingUser != nil {
				log.Warn().Str("email", *updatePayload.Email).Msg("Email already in use by another account during profile update")
				return nil, fmt.Errorf("email already in use by another account")
			} else if err != mongo.ErrNoDocuments {
				log.Error().Err(err).Str("email", *updatePayload.Email).Msg("Failed to check email availability during profile update")
				return nil, fmt.Errorf("failed to check email availability: %w", err)
			}
		}
		updateFields["email"] = *updatePayload.Email
	}
	if updatePayload.Password != nil && *updatePayload.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*updatePayload.Password), 8)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Failed to hash new password for profile update")
			return nil, fmt.Errorf("failed to hash new password: %w", err)
		}
		updateFields["password"] = string(hashedPassword)
	}

	if len(updateFields) == 0 {
		log.Warn().Str("userID", userID.Hex()).Msg("No valid fields provided for user profile update")
		return nil, fmt.Errorf("no valid fields provided for update")
	}
	updateFields["updated_at"] = time.Now().UTC()

	result, err := s.userRepo.Update(ctx, userID, updateFields)
	if err != nil {
		return nil, err
	}

	if result.MatchedCount == 0 {
		log.Warn().Str("user_id", userID.Hex()).Msg("User not found or not authorized to update profile")
		return nil, fmt.Errorf("user not found or not authorized to update")
	}

	updatedUser, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Error fetching updated user profile")
		return nil, fmt.Errorf("failed to retrieve updated user profile")
	}
	updatedUser.Password = ""

	log.Info().Str("user_id", userID.Hex()).Msg("User profile updated successfully")
	return updatedUser, nil
}

// ResetPassword replaces the password for the account with the given email.
// Callers must have verified the reset OTP first.
func (s *userService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("new password is required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("user not found")
		}
		log.Error().Err(err).Str("email", email).Msg("Error finding user for password reset")
		return fmt.Errorf("internal server error")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), 8)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("Failed to hash password during reset")
		return fmt.Errorf("failed to hash password")
	}

	_, err = s.userRepo.Update(ctx, user.ID, bson.M{
		"password":   string(hashedPassword),
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	metrics.PasswordResetsTotal.Inc()
	log.Info().Str("user_id", user.ID.Hex()).Msg("Password reset successfully")
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, userID primitive.ObjectID) error {
	log.Debug().Str("userID", userID.Hex()).Msg("Attempting to delete user account")
	result, err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		log.Warn().Str("user_id", userID.Hex()).Msg("User account not found or not authorized to delete")
		return fmt.Errorf("user account not found or not authorized to delete")
	}

	log.Info().Str("user_id", userID.Hex()).Msg("User account deleted successfully")

	if count, err := s.GetTotalUsers(ctx); err == nil {
		metrics.TotalUsersGauge.Set(float64(count))
	}
	return nil
}
