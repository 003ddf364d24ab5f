package engine

import (
	"strings"
	"time"

	"github.com/khoaaminh1/pftui/internal/types"
	"github.com/khoaaminh1/pftui/pkg/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// CategoryTotal is the sum of the expenses in one category.
type CategoryTotal struct {
	Name   string          `json:"name" example:"Food & Dining"`
	Amount decimal.Decimal `json:"amount" example:"431.20"`
}

// Summary is the income and expense of a date range.
type Summary struct {
	From       time.Time       `json:"from" example:"2024-05-01T00:00:00Z"`
	To         time.Time       `json:"to" example:"2024-05-31T00:00:00Z"`
	Income     decimal.Decimal `json:"income" example:"4500.00"`
	Expense    decimal.Decimal `json:"expense" example:"1832.50"`
	Net        decimal.Decimal `json:"net" example:"2667.50"`
	Categories []CategoryTotal `json:"categories"` // Expense per category name, largest first
}

// Summarize totals income and expense of all transactions dated between
// from and to, both days included. Transaction dates are compared by
// their calendar day.
//
// Transactions without a resolved category are ignored. Expenses are
// grouped by category name.
func Summarize(transactions []ResolvedTransaction, from, to time.Time) (Summary, error) {
	from = models.Day(from)
	to = models.Day(to)

	if from.After(to) {
		return Summary{}, ErrInvalidRange
	}

	summary := Summary{
		From:       from,
		To:         to,
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		Categories: make([]CategoryTotal, 0),
	}

	byName := make(map[string]int)
	for _, t := range transactions {
		if err := validate(t); err != nil {
			return Summary{}, err
		}

		d := models.Day(t.Date)
		if t.Category == nil || d.Before(from) || d.After(to) {
			continue
		}

		switch t.Category.Type {
		case models.CategoryTypeIncome:
			summary.Income = summary.Income.Add(t.Amount)
		case models.CategoryTypeExpense:
			summary.Expense = summary.Expense.Add(t.Amount)

			i, ok := byName[t.Category.Name]
			if !ok {
				i = len(summary.Categories)
				byName[t.Category.Name] = i
				summary.Categories = append(summary.Categories, CategoryTotal{Name: t.Category.Name, Amount: decimal.Zero})
			}
			summary.Categories[i].Amount = summary.Categories[i].Amount.Add(t.Amount)
		}
	}

	summary.Net = summary.Income.Sub(summary.Expense)
	sortCategoryTotals(summary.Categories)

	return summary, nil
}

// SummarizeMonth totals income and expense of the calendar month.
func SummarizeMonth(transactions []ResolvedTransaction, month types.Month) (Summary, error) {
	return Summarize(transactions, month.FirstDay(), month.LastDay())
}

// sortCategoryTotals orders by amount, largest first. Equal amounts are ordered by name.
func sortCategoryTotals(totals []CategoryTotal) {
	slices.SortStableFunc(totals, func(a, b CategoryTotal) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}

		return strings.Compare(a.Name, b.Name)
	})
}
