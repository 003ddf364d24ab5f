package engine

import (
	"bytes"
	"time"

	"github.com/khoaaminh1/pftui/internal/types"
	"github.com/khoaaminh1/pftui/pkg/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// RecentLimit is the number of transactions listed on the dashboard.
const RecentLimit = 10

// DashboardInput is the resolved data the dashboard is composed from.
type DashboardInput struct {
	Window  []ResolvedTransaction // Transactions of the trend window, see TrendWindow
	Recent  []ResolvedTransaction // The most recent transactions of the user
	Budgets []ResolvedBudget      // Budgets of the current month
}

// Dashboard is the overview of a user's finances for the month of now.
type Dashboard struct {
	Month        types.Month           `json:"month" example:"2024-05"`
	MonthIncome  decimal.Decimal       `json:"monthIncome" example:"4500.00"`
	MonthExpense decimal.Decimal       `json:"monthExpense" example:"1832.50"`
	Net          decimal.Decimal       `json:"net" example:"2667.50"`
	Categories   []CategoryTotal       `json:"categories"`
	Trend        Trend                 `json:"trend"`
	Recent       []ResolvedTransaction `json:"recent"`
	BudgetUsages []models.BudgetUsage  `json:"budgetUsages"`
}

// Compose builds the dashboard for the calendar month of now.
//
// Monthly totals, the category breakdown and budget usage only look at
// window transactions in the current month. The trend covers the
// DefaultTrendWindow months ending with the current month.
func Compose(in DashboardInput, now time.Time) (Dashboard, error) {
	month := types.MonthOf(now)

	current := make([]ResolvedTransaction, 0)
	for _, t := range in.Window {
		if month.Contains(t.Date) {
			current = append(current, t)
		}
	}

	summary, err := SummarizeMonth(current, month)
	if err != nil {
		return Dashboard{}, err
	}

	trend, err := CashFlowTrend(in.Window, now, DefaultTrendWindow)
	if err != nil {
		return Dashboard{}, err
	}

	usages, err := BudgetUsages(in.Budgets, month, current)
	if err != nil {
		return Dashboard{}, err
	}

	for _, t := range in.Recent {
		if err := validate(t); err != nil {
			return Dashboard{}, err
		}
	}

	return Dashboard{
		Month:        month,
		MonthIncome:  summary.Income,
		MonthExpense: summary.Expense,
		Net:          summary.Net,
		Categories:   summary.Categories,
		Trend:        trend,
		Recent:       MostRecent(in.Recent, RecentLimit),
		BudgetUsages: usages,
	}, nil
}

// MostRecent returns at most limit transactions, newest first.
//
// Transactions on the same day are ordered by creation time, newest first,
// and then by ID. The input slice is not modified.
func MostRecent(transactions []ResolvedTransaction, limit int) []ResolvedTransaction {
	recent := slices.Clone(transactions)
	if recent == nil {
		recent = make([]ResolvedTransaction, 0)
	}

	slices.SortStableFunc(recent, func(a, b ResolvedTransaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}

		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}

		return bytes.Compare(a.ID[:], b.ID[:])
	})

	if limit >= 0 && len(recent) > limit {
		recent = recent[:limit]
	}

	return recent
}
