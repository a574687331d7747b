package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"spendly/internal/icons"
	"spendly/internal/models"
	"spendly/internal/services"
	"spendly/internal/utils"
)

type CategoryHandler struct {
	categoryService services.CategoryService
}

func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func categoryErrorStatus(err error) int {
	switch {
	case strings.Contains(err.Error(), "not found"):
		return http.StatusNotFound
	case strings.Contains(err.Error(), "still referenced"):
		return http.StatusConflict
	case strings.Contains(err.Error(), "required"),
		strings.Contains(err.Error(), "unknown icon"),
		strings.Contains(err.Error(), "invalid color"),
		strings.Contains(err.Error(), "no fields"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *CategoryHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		utils.SendJSONError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.categoryService.AddCategory(r.Context(), userID, category)
	if err != nil {
		utils.SendJSONError(w, err.Error(), categoryErrorStatus(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	categories, err := h.categoryService.GetCategories(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Error fetching categories")
		utils.SendJSONError(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	utils.RespondWithJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}
	categoryID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	category, err := h.categoryService.GetCategoryByID(r.Context(), userID, categoryID)
	if err != nil {
		utils.SendJSONError(w, err.Error(), categoryErrorStatus(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}
	categoryID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var updatePayload models.CategoryUpdate
	if err := json.NewDecoder(r.Body).Decode(&updatePayload); err != nil {
		utils.SendJSONError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.categoryService.UpdateCategory(r.Context(), userID, categoryID, updatePayload)
	if err != nil {
		utils.SendJSONError(w, err.Error(), categoryErrorStatus(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}
	categoryID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	if _, err := h.categoryService.DeleteCategory(r.Context(), userID, categoryID); err != nil {
		utils.SendJSONError(w, err.Error(), categoryErrorStatus(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}

// GetCategoryOptions serves the icon catalog and color palette the picker
// offers.
func (h *CategoryHandler) GetCategoryOptions(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"icons":   icons.All,
		"palette": icons.Palette,
	})
}
