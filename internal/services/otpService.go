package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"spendly/internal/models"
	"spendly/internal/repositories"
	"spendly/internal/utils"
)

const (
	OTPExpirationMinutes    = 10
	OTPPurposeResetPassword = "reset_password"
)

type OTPService interface {
	GenerateOTPForgotPassword(ctx context.Context, email string) (string, error)
	VerifyOTP(ctx context.Context, email, otpCode string) error
}

type otpService struct {
	userRepo     repositories.UserRepository
	otpRepo      repositories.OTPRepository
	emailService EmailService
}

func NewOTPService(userRepo repositories.UserRepository, otpRepo repositories.OTPRepository, emailService EmailService) OTPService {
	s := &otpService{userRepo: userRepo, otpRepo: otpRepo, emailService: emailService}
	go s.cleanupExpiredPeriodically()
	return s
}

func (s *otpService) cleanupExpiredPeriodically() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s.otpRepo.DeleteExpired(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to delete expired OTP codes")
		}
		cancel()
	}
}

func (s *otpService) GenerateOTPForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", errors.New("user not found")
		}
		return "", err
	}

	otpCode, err := utils.GenerateSecureOTP(6)
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(OTPExpirationMinutes * time.Minute)

	otp := &models.OTP{
		UserID:    user.ID,
		OTPCode:   otpCode,
		Purpose:   OTPPurposeResetPassword,
		ExpiresAt: expiresAt,
		IsUsed:    false,
	}

	_, err = s.otpRepo.Create(ctx, otp)
	if err != nil {
		return "", err
	}

	subject := "Your Password Reset OTP"
	body := fmt.Sprintf("Your OTP for password reset is: %s", otpCode)
	err = s.emailService.SendEmail(email, subject, body)
	if err != nil {
		return "", err
	}

	return otpCode, nil
}

func (s *otpService) VerifyOTP(ctx context.Context, email, otpCode string) error {
	otp, err := s.otpRepo.FindByEmailAndCode(ctx, email, otpCode, OTPPurposeResetPassword)
	if err != nil {
		return err
	}
	if otp == nil {
		return errors.New("invalid or expired OTP")
	}

	if otp.IsUsed {
		return errors.New("OTP already used")
	}

	if time.Now().After(otp.ExpiresAt) {
		return errors.New("OTP expired")
	}

	return s.otpRepo.MarkAsUsed(ctx, otp.ID)
}
