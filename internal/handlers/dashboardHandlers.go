package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"spendly/internal/services"
	"spendly/internal/utils"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Error building dashboard")
		utils.SendJSONError(w, "Error building dashboard", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dashboard)
}
