package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/khoaaminh1/pftui/pkg/engine"
	"github.com/khoaaminh1/pftui/pkg/models"
	"golang.org/x/exp/slices"
)

// resolve attaches accounts and categories to transactions and categories to budgets.
//
// It performs exactly one account lookup and one category lookup, no
// matter how many transactions and budgets reference them.
func (s *Service) resolve(ctx context.Context, transactions []models.Transaction, budgets []models.Budget) ([]engine.ResolvedTransaction, []engine.ResolvedBudget, error) {
	accountIDs, categoryIDs := engine.TransactionReferences(transactions)
	categoryIDs = union(categoryIDs, engine.BudgetReferences(budgets))

	accounts, err := s.store.AccountsByID(ctx, accountIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving accounts: %w", err)
	}

	categories, err := s.store.CategoriesByID(ctx, categoryIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving categories: %w", err)
	}

	return engine.ResolveTransactions(transactions, accounts, categories), engine.ResolveBudgets(budgets, categories), nil
}

// warnDuplicateBudgets logs categories with more than one budget for the same month.
func (s *Service) warnDuplicateBudgets(userID string, budgets []models.Budget) {
	for _, id := range engine.DuplicateBudgets(budgets) {
		s.logger.Warn().
			Str("user", userID).
			Str("category", id.String()).
			Msg("more than one budget for the same category and month, limits are added up")
	}
}

// union merges two ID lists into one sorted list without duplicates.
func union(a, b []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(a)+len(b))
	result := make([]uuid.UUID, 0, len(a)+len(b))

	for _, ids := range [][]uuid.UUID{a, b} {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			result = append(result, id)
		}
	}

	slices.SortFunc(result, func(x, y uuid.UUID) int {
		return bytes.Compare(x[:], y[:])
	})

	return result
}
