// Package ledger implements the in-memory aggregation, filtering and
// grouping engine over a user's expense history. All functions are pure:
// they take already-loaded expenses and a reference date and never touch
// the datastore, so they can be exercised directly in tests.
package ledger

import (
	"math"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"spendly/internal/models"
)

// DateLayout is the calendar-date form used throughout the expense records.
const DateLayout = "2006-01-02"

const weekCount = 5

// Bucket is one week of spend. Label is "W1" for the current week up to
// "W5" for the oldest tracked week.
type Bucket struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

type Trend string

const (
	TrendIncreased Trend = "increased"
	TrendDecreased Trend = "decreased"
	TrendUnchanged Trend = "unchanged"
)

// MonthSummary compares the calendar month containing today against the
// month before it.
type MonthSummary struct {
	CurrentTotal float64 `json:"current_total"`
	LastTotal    float64 `json:"last_total"`
	Delta        float64 `json:"delta"`
	Trend        Trend   `json:"trend"`
}

// WeeklyBuckets distributes expenses into five rolling 7-day buckets ending
// at today. Expenses older than 35 days or dated in the future are dropped.
// Each bucket's total is summed first and rounded once, to the nearest
// whole unit. The slice is ordered oldest week first, W5 down to W1.
func WeeklyBuckets(expenses []models.Expense, today time.Time) []Bucket {
	day := truncateDay(today)
	sums := make([]float64, weekCount)
	for _, e := range expenses {
		d, err := time.ParseInLocation(DateLayout, e.Date, time.UTC)
		if err != nil {
			continue
		}
		dayDiff := int(day.Sub(truncateDay(d)).Hours() / 24)
		if dayDiff < 0 {
			continue
		}
		weekDiff := dayDiff / 7
		if weekDiff >= weekCount {
			continue
		}
		sums[weekDiff] += e.Amount
	}

	buckets := make([]Bucket, 0, weekCount)
	for i := weekCount - 1; i >= 0; i-- {
		buckets = append(buckets, Bucket{
			Label: weekLabel(i),
			Total: math.Round(sums[i]),
		})
	}
	return buckets
}

func weekLabel(weekDiff int) string {
	return "W" + strconv.Itoa(weekDiff+1)
}

// MonthTotals sums the whole calendar month containing today and the whole
// month before it, first day through last day inclusive, and reports the
// change between them. Today only selects the month; it does not clip it.
func MonthTotals(expenses []models.Expense, today time.Time) MonthSummary {
	curStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	curEnd := curStart.AddDate(0, 1, 0)
	lastStart := curStart.AddDate(0, -1, 0)

	var current, last float64
	for _, e := range expenses {
		d, err := time.ParseInLocation(DateLayout, e.Date, time.UTC)
		if err != nil {
			continue
		}
		switch {
		case !d.Before(curStart) && d.Before(curEnd):
			current += e.Amount
		case !d.Before(lastStart) && d.Before(curStart):
			last += e.Amount
		}
	}

	delta := current - last
	trend := TrendUnchanged
	if delta > 0 {
		trend = TrendIncreased
	} else if delta < 0 {
		trend = TrendDecreased
	}
	return MonthSummary{
		CurrentTotal: current,
		LastTotal:    last,
		Delta:        delta,
		Trend:        trend,
	}
}

// CategoryTotals sums spend per category over the full history.
func CategoryTotals(expenses []models.Expense) map[primitive.ObjectID]float64 {
	totals := make(map[primitive.ObjectID]float64)
	for _, e := range expenses {
		totals[e.CategoryID] += e.Amount
	}
	return totals
}

// Total sums all amounts.
func Total(expenses []models.Expense) float64 {
	var sum float64
	for _, e := range expenses {
		sum += e.Amount
	}
	return sum
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
