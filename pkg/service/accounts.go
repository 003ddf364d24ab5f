package service

import (
	"context"
	"fmt"
	"time"

	"github.com/khoaaminh1/pftui/pkg/engine"
)

// AccountsWithBalance returns the accounts of the user with their current balance.
//
// If activeOnly is set, inactive accounts are left out.
func (s *Service) AccountsWithBalance(ctx context.Context, userID string, activeOnly bool) (balances []engine.AccountBalance, err error) {
	start := time.Now()
	defer func() { s.metrics.observe("balances", start, err) }()

	accounts, err := s.store.AccountsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}

	transactions, err := s.store.TransactionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	// Accounts are already loaded, only categories need a lookup
	_, categoryIDs := engine.TransactionReferences(transactions)
	categories, err := s.store.CategoriesByID(ctx, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("resolving categories: %w", err)
	}

	all, err := engine.Balances(accounts, engine.ResolveTransactions(transactions, accounts, categories))
	if err != nil {
		return nil, err
	}

	balances = make([]engine.AccountBalance, 0, len(all))
	for _, b := range all {
		if activeOnly && !b.Active() {
			continue
		}
		balances = append(balances, b)
	}

	s.logger.Debug().Str("user", userID).Int("accounts", len(balances)).Msg("balances calculated")
	return balances, nil
}
