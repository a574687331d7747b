package ledger

import (
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"spendly/internal/models"
)

type SortKey string

const (
	SortByDate   SortKey = "date"
	SortByAmount SortKey = "amount"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Filter describes one pass over a user's expenses. Start and End are
// inclusive YYYY-MM-DD bounds; an empty bound is open. An empty CategoryIDs
// set matches everything. Terms are matched case-insensitively as
// substrings against the tag and the category name, any term hitting either
// field keeps the expense.
type Filter struct {
	Start       string
	End         string
	CategoryIDs []primitive.ObjectID
	Terms       []string
	SortBy      SortKey
	Order       SortOrder
}

// DefaultFilter covers the first of the current month through today,
// newest first by date.
func DefaultFilter(today time.Time) Filter {
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Filter{
		Start:  first.Format(DateLayout),
		End:    today.Format(DateLayout),
		SortBy: SortByDate,
		Order:  OrderDesc,
	}
}

// AddTerm appends a search term, ignoring blanks and case-insensitive
// duplicates.
func (f *Filter) AddTerm(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	for _, t := range f.Terms {
		if strings.EqualFold(t, term) {
			return
		}
	}
	f.Terms = append(f.Terms, term)
}

// Apply filters and sorts expenses. categoryNames supplies the display name
// per category for term matching. Date bounds compare the raw YYYY-MM-DD
// strings, which orders the same as the calendar. Ties on the primary key
// always fall back to created_at descending, regardless of Order.
func (f Filter) Apply(expenses []models.Expense, categoryNames map[primitive.ObjectID]string) []models.Expense {
	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Start != "" && e.Date < f.Start {
			continue
		}
		if f.End != "" && e.Date > f.End {
			continue
		}
		if len(f.CategoryIDs) > 0 && !containsID(f.CategoryIDs, e.CategoryID) {
			continue
		}
		if len(f.Terms) > 0 && !f.matchesTerms(e, categoryNames[e.CategoryID]) {
			continue
		}
		out = append(out, e)
	}

	f.sortExpenses(out)
	return out
}

func (f Filter) matchesTerms(e models.Expense, categoryName string) bool {
	tag := strings.ToLower(e.Tag)
	name := strings.ToLower(categoryName)
	for _, term := range f.Terms {
		t := strings.ToLower(term)
		if strings.Contains(tag, t) || strings.Contains(name, t) {
			return true
		}
	}
	return false
}

func (f Filter) sortExpenses(out []models.Expense) {
	desc := f.Order != OrderAsc
	byAmount := f.SortBy == SortByAmount

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if byAmount {
			if a.Amount != b.Amount {
				if desc {
					return a.Amount > b.Amount
				}
				return a.Amount < b.Amount
			}
		} else {
			if a.Date != b.Date {
				if desc {
					return a.Date > b.Date
				}
				return a.Date < b.Date
			}
		}
		return a.CreatedAt > b.CreatedAt
	})
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
