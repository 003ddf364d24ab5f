package service

import (
	"context"
	"fmt"
	"time"

	"github.com/khoaaminh1/pftui/internal/types"
	"github.com/khoaaminh1/pftui/pkg/engine"
	"github.com/khoaaminh1/pftui/pkg/models"
)

// Dashboard composes the dashboard of the user for the current month.
//
// Transactions are fetched once for the whole trend window. The current
// month's figures are derived from the same data.
func (s *Service) Dashboard(ctx context.Context, userID string) (d engine.Dashboard, err error) {
	start := time.Now()
	defer func() { s.metrics.observe("dashboard", start, err) }()

	now := s.now()
	month := types.MonthOf(now)
	first, last := engine.TrendWindow(now, engine.DefaultTrendWindow)

	window, err := s.store.TransactionsBetween(ctx, userID, first.FirstDay(), last.LastDay())
	if err != nil {
		return engine.Dashboard{}, fmt.Errorf("loading transactions: %w", err)
	}

	recent, err := s.store.RecentTransactions(ctx, userID, engine.RecentLimit)
	if err != nil {
		return engine.Dashboard{}, fmt.Errorf("loading recent transactions: %w", err)
	}

	budgets, err := s.store.BudgetsForMonth(ctx, userID, month)
	if err != nil {
		return engine.Dashboard{}, fmt.Errorf("loading budgets: %w", err)
	}
	s.warnDuplicateBudgets(userID, budgets)

	all := make([]models.Transaction, 0, len(window)+len(recent))
	all = append(all, window...)
	all = append(all, recent...)

	resolved, resolvedBudgets, err := s.resolve(ctx, all, budgets)
	if err != nil {
		return engine.Dashboard{}, err
	}

	d, err = engine.Compose(engine.DashboardInput{
		Window:  resolved[:len(window)],
		Recent:  resolved[len(window):],
		Budgets: resolvedBudgets,
	}, now)
	if err != nil {
		return engine.Dashboard{}, err
	}

	s.logger.Debug().
		Str("user", userID).
		Str("month", month.String()).
		Int("transactions", len(window)).
		Int("budgets", len(budgets)).
		Dur("duration", time.Since(start)).
		Msg("dashboard composed")

	return d, nil
}
