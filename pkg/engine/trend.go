package engine

import (
	"time"

	"github.com/khoaaminh1/pftui/internal/types"
	"github.com/khoaaminh1/pftui/pkg/models"
	"github.com/shopspring/decimal"
)

// DefaultTrendWindow is the number of months in a cash flow trend.
const DefaultTrendWindow = 6

// Trend is the income and expense per calendar month, oldest month first.
//
// All slices have the same length, one entry per month.
type Trend struct {
	Months   []string          `json:"months" example:"Jan"` // Three letter month labels
	Buckets  []types.Month     `json:"buckets"`
	Incomes  []decimal.Decimal `json:"incomes"`
	Expenses []decimal.Decimal `json:"expenses"`
}

// TrendWindow returns the first and last month of a trend with the given
// number of months that ends with the month of now.
//
// A window of zero or less months falls back to DefaultTrendWindow.
func TrendWindow(now time.Time, windowMonths int) (first, last types.Month) {
	if windowMonths <= 0 {
		windowMonths = DefaultTrendWindow
	}

	last = types.MonthOf(now)
	first = last.AddDate(0, -(windowMonths - 1))
	return
}

// CashFlowTrend sums up income and expense per month for the window ending with the month of now.
//
// Transactions without a resolved category and transactions outside of the
// window are ignored. Months without transactions report zero.
func CashFlowTrend(transactions []ResolvedTransaction, now time.Time, windowMonths int) (Trend, error) {
	first, last := TrendWindow(now, windowMonths)
	buckets := types.Range(first, last)

	trend := Trend{
		Months:   make([]string, len(buckets)),
		Buckets:  buckets,
		Incomes:  make([]decimal.Decimal, len(buckets)),
		Expenses: make([]decimal.Decimal, len(buckets)),
	}

	index := make(map[types.Month]int, len(buckets))
	for i, m := range buckets {
		index[m] = i
		trend.Months[i] = m.Label()
		trend.Incomes[i] = decimal.Zero
		trend.Expenses[i] = decimal.Zero
	}

	for _, t := range transactions {
		if err := validate(t); err != nil {
			return Trend{}, err
		}

		if t.Category == nil {
			continue
		}

		i, ok := index[types.MonthOf(t.Date)]
		if !ok {
			continue
		}

		switch t.Category.Type {
		case models.CategoryTypeIncome:
			trend.Incomes[i] = trend.Incomes[i].Add(t.Amount)
		case models.CategoryTypeExpense:
			trend.Expenses[i] = trend.Expenses[i].Add(t.Amount)
		}
	}

	return trend, nil
}
