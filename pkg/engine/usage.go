package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/khoaaminh1/pftui/internal/types"
	"github.com/khoaaminh1/pftui/pkg/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// NewBudgetUsage compares the spent amount with the limit.
//
// The percentage is rounded half up to a whole number. It is 0 when the
// limit is zero or negative.
func NewBudgetUsage(categoryName string, spent, limit decimal.Decimal) models.BudgetUsage {
	usage := models.BudgetUsage{
		CategoryName: categoryName,
		Spent:        spent,
		Limit:        limit,
	}

	if limit.IsPositive() {
		usage.Percent = spent.Mul(hundred).DivRound(limit, 0).IntPart()
	}

	return usage
}

// BudgetUsages calculates the usage of every budget for the month.
//
// Budgets for other months and budgets whose category is missing or is not
// an expense category are left out. Spent is the sum of all transactions
// in the month that reference the budget's category. Transactions outside
// the month are ignored.
//
// The result keeps the order of the budgets. If there is more than one
// budget for the same category, their limits are added up and reported
// at the position of the first one.
func BudgetUsages(budgets []ResolvedBudget, month types.Month, transactions []ResolvedTransaction) ([]models.BudgetUsage, error) {
	spent := make(map[uuid.UUID]decimal.Decimal)
	for _, t := range transactions {
		if err := validate(t); err != nil {
			return nil, err
		}

		if !month.Contains(t.Date) {
			continue
		}

		sum, ok := spent[t.CategoryID]
		if !ok {
			sum = decimal.Zero
		}
		spent[t.CategoryID] = sum.Add(t.Amount)
	}

	usages := make([]models.BudgetUsage, 0)
	positions := make(map[uuid.UUID]int)

	for _, b := range budgets {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("budget %s: %w", b.ID, err)
		}

		if b.Year != month.Year() || b.Month != int(month.Month()) {
			continue
		}

		if b.Category == nil || !b.Category.IsExpense() {
			continue
		}

		if i, ok := positions[b.CategoryID]; ok {
			u := usages[i]
			usages[i] = NewBudgetUsage(u.CategoryName, u.Spent, u.Limit.Add(b.LimitAmount))
			continue
		}

		s, ok := spent[b.CategoryID]
		if !ok {
			s = decimal.Zero
		}

		positions[b.CategoryID] = len(usages)
		usages = append(usages, NewBudgetUsage(b.Category.Name, s, b.LimitAmount))
	}

	return usages, nil
}

// DuplicateBudgets returns the IDs of categories that have more than one
// budget for the same month and year.
func DuplicateBudgets(budgets []models.Budget) []uuid.UUID {
	type key struct {
		category    uuid.UUID
		year, month int
	}

	seen := make(map[key]int)
	duplicates := make([]uuid.UUID, 0)

	for _, b := range budgets {
		k := key{b.CategoryID, b.Year, b.Month}
		seen[k]++
		if seen[k] == 2 {
			duplicates = append(duplicates, b.CategoryID)
		}
	}

	return duplicates
}
