package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"spendly/internal/ledger"
	"spendly/internal/models"
	"spendly/internal/services"
	"spendly/internal/utils"
)

type ExpenseHandler struct {
	expenseService services.ExpenseService
	now            func() time.Time
}

func NewExpenseHandler(expenseService services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func expenseErrorStatus(err error) int {
	switch {
	case strings.Contains(err.Error(), "not found"):
		return http.StatusNotFound
	case strings.Contains(err.Error(), "required"),
		strings.Contains(err.Error(), "invalid"),
		strings.Contains(err.Error(), "negative"),
		strings.Contains(err.Error(), "no fields"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *ExpenseHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	var body models.AddExpenseRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendJSONError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.expenseService.AddExpense(r.Context(), userID, body)
	if err != nil {
		utils.SendJSONError(w, err.Error(), expenseErrorStatus(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *ExpenseHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}
	expenseID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	expense, err := h.expenseService.GetExpense(r.Context(), userID, expenseID)
	if err != nil {
		utils.SendJSONError(w, err.Error(), expenseErrorStatus(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}
	expenseID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var body models.UpdateExpenseRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendJSONError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.expenseService.UpdateExpense(r.Context(), userID, expenseID, body)
	if err != nil {
		utils.SendJSONError(w, err.Error(), expenseErrorStatus(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// parseListFilter builds a ledger.Filter from the listing query parameters:
// start, end, categories (comma-separated ids), q (repeatable), sort, order.
func (h *ExpenseHandler) parseListFilter(r *http.Request) (ledger.Filter, error) {
	filter := ledger.DefaultFilter(h.now())
	q := r.URL.Query()

	if v := q.Get("start"); v != "" {
		filter.Start = v
	}
	if v := q.Get("end"); v != "" {
		filter.End = v
	}
	if v := q.Get("categories"); v != "" {
		ids, err := utils.ParseObjectIDs(v)
		if err != nil {
			return filter, err
		}
		filter.CategoryIDs = ids
	}
	for _, term := range q["q"] {
		filter.AddTerm(term)
	}
	if v := q.Get("sort"); v == string(ledger.SortByAmount) {
		filter.SortBy = ledger.SortByAmount
	}
	if v := q.Get("order"); v == string(ledger.OrderAsc) {
		filter.Order = ledger.OrderAsc
	}
	return filter, nil
}

func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	filter, err := h.parseListFilter(r)
	if err != nil {
		utils.SendJSONError(w, "Invalid category id in filter", http.StatusBadRequest)
		return
	}

	listing, err := h.expenseService.ListExpenses(r.Context(), userID, filter)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.Hex()).Msg("Error listing expenses")
		utils.SendJSONError(w, "Error listing expenses", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, listing)
}

func (h *ExpenseHandler) RecentExpenses(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	expenses, err := h.expenseService.RecentExpenses(r.Context(), userID)
	if err != nil {
		utils.SendJSONError(w, "Error fetching recent expenses", http.StatusInternalServerError)
		return
	}
	if expenses == nil {
		expenses = []models.ExpenseDetail{}
	}

	utils.RespondWithJSON(w, http.StatusOK, expenses)
}
