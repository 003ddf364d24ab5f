package service

import (
	"context"
	"fmt"
	"time"

	"github.com/khoaaminh1/pftui/internal/types"
	"github.com/khoaaminh1/pftui/pkg/engine"
	"github.com/khoaaminh1/pftui/pkg/models"
)

// BudgetUsages compares the spend of every budgeted expense category with its limit for the month.
func (s *Service) BudgetUsages(ctx context.Context, userID string, month types.Month) (usages []models.BudgetUsage, err error) {
	start := time.Now()
	defer func() { s.metrics.observe("budget_usages", start, err) }()

	budgets, err := s.Budgets(ctx, userID, month)
	if err != nil {
		return nil, err
	}

	transactions, err := s.store.TransactionsBetween(ctx, userID, month.FirstDay(), month.LastDay())
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	// Spend is matched by category ID, transactions need no resolution
	usages, err = engine.BudgetUsages(budgets, month, engine.ResolveTransactions(transactions, nil, nil))
	if err != nil {
		return nil, err
	}

	return usages, nil
}

// Budgets returns the budgets of the user for the month with their categories.
func (s *Service) Budgets(ctx context.Context, userID string, month types.Month) ([]engine.ResolvedBudget, error) {
	budgets, err := s.store.BudgetsForMonth(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("loading budgets: %w", err)
	}
	s.warnDuplicateBudgets(userID, budgets)

	categories, err := s.store.CategoriesByID(ctx, engine.BudgetReferences(budgets))
	if err != nil {
		return nil, fmt.Errorf("resolving categories: %w", err)
	}

	return engine.ResolveBudgets(budgets, categories), nil
}
