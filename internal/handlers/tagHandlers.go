package handlers

import (
	"net/http"

	"spendly/internal/services"
	"spendly/internal/utils"
)

type TagHandler struct {
	expenseService services.ExpenseService
}

func NewTagHandler(expenseService services.ExpenseService) *TagHandler {
	return &TagHandler{expenseService: expenseService}
}

// GetTags serves the user's distinct tags for autocomplete.
func (h *TagHandler) GetTags(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	tags, err := h.expenseService.TagSuggestions(r.Context(), userID)
	if err != nil {
		utils.SendJSONError(w, "Error fetching tags", http.StatusInternalServerError)
		return
	}
	if tags == nil {
		tags = []string{}
	}

	utils.RespondWithJSON(w, http.StatusOK, tags)
}
