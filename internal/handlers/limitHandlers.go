package handlers

import (
	"net/http"

	"spendly/internal/services"
	"spendly/internal/utils"
)

type LimitHandler struct {
	limitService services.LimitService
}

func NewLimitHandler(limitService services.LimitService) *LimitHandler {
	return &LimitHandler{limitService: limitService}
}

func (h *LimitHandler) GetWeeklyLimit(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	limit, err := h.limitService.GetWeeklyLimit(r.Context(), userID)
	if err != nil {
		utils.SendJSONError(w, "Error fetching weekly limit", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]float64{"amount": limit})
}
