package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	_ "github.com/joho/godotenv/autoload"

	"spendly/internal/models"
	"spendly/internal/services"
	"spendly/internal/utils"
)

type UserHandler struct {
	userService services.UserService
	otpService  services.OTPService
}

func NewUserHandler(userService services.UserService, otpService services.OTPService) *UserHandler {
	return &UserHandler{userService: userService, otpService: otpService}
}

func (u *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var user models.User

	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Error().Err(err).Msg("Invalid user data input for Register")
		utils.SendJSONError(w, "Invalid user data input: "+err.Error(), http.StatusBadRequest)
		return
	}

	registeredUser, err := u.userService.RegisterUser(r.Context(), &user)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "invalid") {
			statusCode = http.StatusBadRequest
		} else if strings.Contains(err.Error(), "already exists") {
			statusCode = http.StatusConflict
		}
		utils.SendJSONError(w, err.Error(), statusCode)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, registeredUser)
}

func (u *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Login

	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Error().Err(err).Msg("Invalid request body for Login")
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	token, err := u.userService.LoginUser(r.Context(), &creds)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if strings.Contains(err.Error(), "invalid credentials") {
			statusCode = http.StatusUnauthorized
		}
		utils.RespondWithError(w, statusCode, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (u *UserHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	user, err := u.userService.GetUserProfile(r.Context(), userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			statusCode = http.StatusNotFound
		}
		utils.SendJSONError(w, err.Error(), statusCode)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, user)
}

func (u *UserHandler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	var updatePayload models.UserProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&updatePayload); err != nil {
		log.Error().Err(err).Msg("Invalid JSON payload for UpdateMyProfile")
		utils.SendJSONError(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	updatedUser, err := u.userService.UpdateUserProfile(r.Context(), userID, &updatePayload)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if strings.Contains(err.Error(), "no valid fields") {
			statusCode = http.StatusBadRequest
		} else if strings.Contains(err.Error(), "already in use") {
			statusCode = http.StatusConflict
		} else if strings.Contains(err.Error(), "not found") {
			statusCode = http.StatusNotFound
		}
		utils.SendJSONError(w, err.Error(), statusCode)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updatedUser)
}

func (u *UserHandler) DeleteMyAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	if err := u.userService.DeleteUser(r.Context(), userID); err != nil {
		statusCode := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			statusCode = http.StatusNotFound
		}
		utils.SendJSONError(w, err.Error(), statusCode)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Account deleted successfully"})
}

// ForgotPassword issues a reset OTP to the given email.
func (u *UserHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		utils.SendJSONError(w, "Email is required", http.StatusBadRequest)
		return
	}

	if _, err := u.otpService.GenerateOTPForgotPassword(r.Context(), req.Email); err != nil {
		// Do not reveal whether the account exists.
		log.Warn().Err(err).Str("email", req.Email).Msg("Failed to issue password reset OTP")
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "If the account exists, a reset code has been sent",
	})
}

// ResetPassword verifies the OTP and replaces the password.
func (u *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.OTPCode == "" || req.NewPassword == "" {
		utils.SendJSONError(w, "Email, OTP code, and new password are required", http.StatusBadRequest)
		return
	}

	if err := u.otpService.VerifyOTP(r.Context(), req.Email, req.OTPCode); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	if err := u.userService.ResetPassword(r.Context(), req.Email, req.NewPassword); err != nil {
		statusCode := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			statusCode = http.StatusNotFound
		}
		utils.SendJSONError(w, err.Error(), statusCode)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Password reset successfully"})
}
