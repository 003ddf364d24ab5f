package engine_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/khoaaminh1/pftui/internal/types"
	"github.com/khoaaminh1/pftui/pkg/engine"
	"github.com/khoaaminh1/pftui/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBudgetUsagePercent(t *testing.T) {
	tests := []struct {
		spent   string
		limit   string
		percent int64
	}{
		{"200", "300", 67},
		{"150", "200", 75},
		{"100", "300", 33},
		{"0", "300", 0},
		{"450", "300", 150},
		{"0.335", "1", 34},
		{"0.125", "1", 13},
		{"0.005", "1", 1},
		{"0.00499", "1", 0},
		{"50", "0", 0},
		{"0", "0", 0},
		{"50", "-10", 0},
	}

	for _, tt := range tests {
		t.Run(tt.spent+"/"+tt.limit, func(t *testing.T) {
			usage := engine.NewBudgetUsage("Food", decimal.RequireFromString(tt.spent), decimal.RequireFromString(tt.limit))
			assert.Equal(t, tt.percent, usage.Percent)
			assert.Equal(t, "Food", usage.CategoryName)
			assert.True(t, usage.Spent.Equal(decimal.RequireFromString(tt.spent)))
			assert.True(t, usage.Limit.Equal(decimal.RequireFromString(tt.limit)))
		})
	}
}

func TestBudgetUsages(t *testing.T) {
	f := newFixture()
	month := types.NewMonth(2024, 5)

	transactions := f.resolve(
		transaction(f.checking, f.food, "120", day(2024, 5, 3)),
		transaction(f.savings, f.food, "30", day(2024, 5, 31)),
		transaction(f.checking, f.food, "999", day(2024, 4, 30)),
		transaction(f.checking, f.food, "999", day(2024, 6, 1)),
		transaction(f.checking, f.salary, "4000", day(2024, 5, 1)),
	)

	budgets := engine.ResolveBudgets([]models.Budget{
		budget(f.food, "200", 2024, 5),
		budget(f.rent, "900", 2024, 5),
		budget(f.salary, "100", 2024, 5),
		budget(f.food, "500", 2024, 4),
	}, f.categories())

	usages, err := engine.BudgetUsages(budgets, month, transactions)
	require.Nil(t, err)
	require.Len(t, usages, 2, "Budgets of income categories or other months must be excluded")

	assert.Equal(t, "Food & Dining", usages[0].CategoryName)
	assert.True(t, usages[0].Spent.Equal(decimal.NewFromInt(150)), usages[0].Spent.String())
	assert.Equal(t, int64(75), usages[0].Percent)

	assert.Equal(t, "Bills & Utilities", usages[1].CategoryName)
	assert.True(t, usages[1].Spent.IsZero())
	assert.Equal(t, int64(0), usages[1].Percent)
}

func TestBudgetUsagesMissingCategory(t *testing.T) {
	f := newFixture()

	orphan := budget(f.food, "100", 2024, 5)
	orphan.CategoryID = uuid.New()

	usages, err := engine.BudgetUsages(engine.ResolveBudgets([]models.Budget{orphan}, f.categories()), types.NewMonth(2024, 5), nil)
	require.Nil(t, err)
	assert.Len(t, usages, 0)
}

func TestBudgetUsagesDuplicateBudgets(t *testing.T) {
	f := newFixture()

	budgets := engine.ResolveBudgets([]models.Budget{
		budget(f.food, "100", 2024, 5),
		budget(f.rent, "900", 2024, 5),
		budget(f.food, "200", 2024, 5),
	}, f.categories())

	transactions := f.resolve(transaction(f.checking, f.food, "150", day(2024, 5, 3)))

	usages, err := engine.BudgetUsages(budgets, types.NewMonth(2024, 5), transactions)
	require.Nil(t, err)
	require.Len(t, usages, 2)

	assert.Equal(t, "Food & Dining", usages[0].CategoryName)
	assert.True(t, usages[0].Limit.Equal(decimal.NewFromInt(300)), usages[0].Limit.String())
	assert.Equal(t, int64(50), usages[0].Percent)
	assert.Equal(t, "Bills & Utilities", usages[1].CategoryName)
}

func TestBudgetUsagesInvalidMonth(t *testing.T) {
	f := newFixture()

	invalid := budget(f.food, "100", 2024, 5)
	invalid.Month = 13

	_, err := engine.BudgetUsages(engine.ResolveBudgets([]models.Budget{invalid}, f.categories()), types.NewMonth(2024, 5), nil)
	assert.ErrorIs(t, err, models.ErrInvalidBudgetMonth)
}

func TestBudgetUsagesIdempotent(t *testing.T) {
	f := newFixture()
	month := types.NewMonth(2024, 5)

	budgets := engine.ResolveBudgets([]models.Budget{budget(f.food, "300", 2024, 5)}, f.categories())
	transactions := f.resolve(transaction(f.checking, f.food, "200", day(2024, 5, 3)))

	first, err := engine.BudgetUsages(budgets, month, transactions)
	require.Nil(t, err)
	second, err := engine.BudgetUsages(budgets, month, transactions)
	require.Nil(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(67), first[0].Percent)
}

func TestDuplicateBudgets(t *testing.T) {
	f := newFixture()

	duplicates := engine.DuplicateBudgets([]models.Budget{
		budget(f.food, "100", 2024, 5),
		budget(f.food, "100", 2024, 6),
		budget(f.food, "200", 2024, 5),
		budget(f.food, "300", 2024, 5),
		budget(f.rent, "900", 2024, 5),
	})

	assert.Equal(t, []uuid.UUID{f.food.ID}, duplicates)
}
