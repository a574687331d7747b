package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spendly/internal/models"
)

var (
	catFood   = primitive.NewObjectID()
	catTravel = primitive.NewObjectID()

	catNames = map[primitive.ObjectID]string{
		catFood:   "Groceries",
		catTravel: "Travel",
	}
)

func entry(date string, amount float64, tag string, cat primitive.ObjectID, created int64) models.Expense {
	return models.Expense{
		Date:       date,
		Amount:     amount,
		Tag:        tag,
		CategoryID: cat,
		CreatedAt:  primitive.DateTime(created),
	}
}

func TestDefaultFilter(t *testing.T) {
	f := DefaultFilter(day("2024-03-20"))
	assert.Equal(t, "2024-03-01", f.Start)
	assert.Equal(t, "2024-03-20", f.End)
	assert.Equal(t, SortByDate, f.SortBy)
	assert.Equal(t, OrderDesc, f.Order)
}

func TestAddTermDedupesCaseInsensitively(t *testing.T) {
	var f Filter
	f.AddTerm("coffee")
	f.AddTerm("  Coffee ")
	f.AddTerm("")
	f.AddTerm("lunch")
	assert.Equal(t, []string{"coffee", "lunch"}, f.Terms)
}

func TestApplyDateBoundsInclusive(t *testing.T) {
	expenses := []models.Expense{
		entry("2024-03-01", 1, "", catFood, 1),
		entry("2024-03-10", 2, "", catFood, 2),
		entry("2024-03-20", 3, "", catFood, 3),
		entry("2024-02-28", 4, "", catFood, 4),
	}
	f := Filter{Start: "2024-03-01", End: "2024-03-10", SortBy: SortByDate, Order: OrderAsc}

	got := f.Apply(expenses, catNames)
	assert.Len(t, got, 2)
	assert.Equal(t, "2024-03-01", got[0].Date)
	assert.Equal(t, "2024-03-10", got[1].Date)
}

func TestApplyEmptyCategorySetMatchesAll(t *testing.T) {
	expenses := []models.Expense{
		entry("2024-03-01", 1, "", catFood, 1),
		entry("2024-03-02", 2, "", catTravel, 2),
	}
	f := Filter{SortBy: SortByDate, Order: OrderAsc}

	got := f.Apply(expenses, catNames)
	assert.Len(t, got, 2)
}

func TestApplyCategorySubset(t *testing.T) {
	expenses := []models.Expense{
		entry("2024-03-01", 1, "", catFood, 1),
		entry("2024-03-02", 2, "", catTravel, 2),
	}
	f := Filter{CategoryIDs: []primitive.ObjectID{catTravel}, SortBy: SortByDate, Order: OrderAsc}

	got := f.Apply(expenses, catNames)
	assert.Len(t, got, 1)
	assert.Equal(t, catTravel, got[0].CategoryID)
}

func TestApplySearchMatchesTagOrCategoryName(t *testing.T) {
	expenses := []models.Expense{
		entry("2024-03-01", 1, "morning coffee", catFood, 1),
		entry("2024-03-02", 2, "flight home", catTravel, 2),
		entry("2024-03-03", 3, "", catFood, 3),
	}

	f := Filter{SortBy: SortByDate, Order: OrderAsc}
	f.AddTerm("COFFEE")
	got := f.Apply(expenses, catNames)
	assert.Len(t, got, 1)
	assert.Equal(t, "morning coffee", got[0].Tag)

	// "groc" hits the Groceries category name, matching tagless entries too.
	f = Filter{SortBy: SortByDate, Order: OrderAsc}
	f.AddTerm("groc")
	got = f.Apply(expenses, catNames)
	assert.Len(t, got, 2)

	// Terms combine as OR.
	f = Filter{SortBy: SortByDate, Order: OrderAsc}
	f.AddTerm("flight")
	f.AddTerm("coffee")
	got = f.Apply(expenses, catNames)
	assert.Len(t, got, 2)
}

func TestApplySortByDate(t *testing.T) {
	expenses := []models.Expense{
		entry("2024-03-01", 1, "", catFood, 1),
		entry("2024-03-03", 2, "", catFood, 2),
		entry("2024-03-02", 3, "", catFood, 3),
	}

	f := Filter{SortBy: SortByDate, Order: OrderDesc}
	got := f.Apply(expenses, catNames)
	assert.Equal(t, []string{"2024-03-03", "2024-03-02", "2024-03-01"},
		[]string{got[0].Date, got[1].Date, got[2].Date})

	f.Order = OrderAsc
	got = f.Apply(expenses, catNames)
	assert.Equal(t, "2024-03-01", got[0].Date)
}

func TestApplySortByAmount(t *testing.T) {
	expenses := []models.Expense{
		entry("2024-03-01", 5, "", catFood, 1),
		entry("2024-03-02", 1, "", catFood, 2),
		entry("2024-03-03", 3, "", catFood, 3),
	}

	f := Filter{SortBy: SortByAmount, Order: OrderDesc}
	got := f.Apply(expenses, catNames)
	assert.Equal(t, []float64{5, 3, 1},
		[]float64{got[0].Amount, got[1].Amount, got[2].Amount})
}

func TestApplyTieBreakIsAlwaysNewestCreatedFirst(t *testing.T) {
	expenses := []models.Expense{
		entry("2024-03-10", 2, "older", catFood, 100),
		entry("2024-03-10", 2, "newer", catFood, 200),
	}

	for _, order := range []SortOrder{OrderAsc, OrderDesc} {
		for _, key := range []SortKey{SortByDate, SortByAmount} {
			f := Filter{SortBy: key, Order: order}
			got := f.Apply(expenses, catNames)
			assert.Equal(t, "newer", got[0].Tag, "key=%s order=%s", key, order)
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	expenses := []models.Expense{
		entry("2024-03-01", 1, "", catFood, 1),
		entry("2024-03-02", 2, "", catFood, 2),
	}
	f := Filter{SortBy: SortByDate, Order: OrderDesc}
	_ = f.Apply(expenses, catNames)
	assert.Equal(t, "2024-03-01", expenses[0].Date)
}

func TestApplyIsDeterministic(t *testing.T) {
	expenses := []models.Expense{
		entry("2024-03-10", 2, "a", catFood, 3),
		entry("2024-03-10", 2, "b", catTravel, 2),
		entry("2024-03-09", 2, "c", catFood, 1),
	}
	f := Filter{SortBy: SortByAmount, Order: OrderDesc}

	first := f.Apply(expenses, catNames)
	for i := 0; i < 5; i++ {
		again := f.Apply(expenses, catNames)
		assert.Equal(t, first, again)
	}
}
