package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"spendly/internal/models"
)

func detail(date, tag string) models.ExpenseDetail {
	return models.ExpenseDetail{Expense: models.Expense{Date: date, Tag: tag}}
}

func TestGroupByDayPreservesOrder(t *testing.T) {
	groups := GroupByDay([]models.ExpenseDetail{
		detail("2024-03-20", "a"),
		detail("2024-03-20", "b"),
		detail("2024-03-18", "c"),
		detail("2024-03-20", "d"),
	})

	assert.Len(t, groups, 2)
	assert.Equal(t, "2024-03-20", groups[0].Date)
	assert.Equal(t, "2024-03-18", groups[1].Date)
	assert.Equal(t, []string{"a", "b", "d"},
		[]string{groups[0].Expenses[0].Tag, groups[0].Expenses[1].Tag, groups[0].Expenses[2].Tag})
}

func TestGroupByDayLabels(t *testing.T) {
	// 2024-03-20 is a Wednesday.
	groups := GroupByDay([]models.ExpenseDetail{
		detail("2024-03-20", "a"),
		detail("2024-03-04", "b"),
	})

	assert.Equal(t, "Wednesday, 20", groups[0].Label)
	assert.Equal(t, "Monday, 4", groups[1].Label)
}

func TestGroupByDayUnparseableDateKeepsRawLabel(t *testing.T) {
	groups := GroupByDay([]models.ExpenseDetail{detail("03/20/2024", "a")})
	assert.Equal(t, "03/20/2024", groups[0].Label)
}

func TestGroupByDayEmpty(t *testing.T) {
	assert.Empty(t, GroupByDay(nil))
}
