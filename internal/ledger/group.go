package ledger

import (
	"time"

	"spendly/internal/models"
)

// DayGroup is a run of expenses sharing a calendar date, labeled for
// display like "Monday, 2".
type DayGroup struct {
	Label    string                 `json:"label"`
	Date     string                 `json:"date"`
	Expenses []models.ExpenseDetail `json:"expenses"`
}

// GroupByDay partitions already-sorted expenses by date, preserving the
// incoming order both across groups and within each group. Dates that fail
// to parse keep the raw date string as their label.
func GroupByDay(expenses []models.ExpenseDetail) []DayGroup {
	groups := make([]DayGroup, 0)
	index := make(map[string]int)

	for _, e := range expenses {
		i, ok := index[e.Date]
		if !ok {
			i = len(groups)
			index[e.Date] = i
			groups = append(groups, DayGroup{
				Label: dayLabel(e.Date),
				Date:  e.Date,
			})
		}
		groups[i].Expenses = append(groups[i].Expenses, e)
	}
	return groups
}

func dayLabel(date string) string {
	d, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return date
	}
	return d.Format("Monday, 2")
}
