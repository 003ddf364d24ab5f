package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/khoaaminh1/pftui/pkg/engine"
	"github.com/khoaaminh1/pftui/pkg/models"
	"github.com/khoaaminh1/pftui/pkg/store"
	"github.com/ryanuber/go-glob"
)

// TransactionQuery filters transactions. Zero values do not filter.
type TransactionQuery struct {
	From       time.Time
	To         time.Time
	AccountID  uuid.UUID
	CategoryID uuid.UUID
	Merchant   string // Case insensitive glob, e.g. "*coffee*". A pattern without * matches anywhere in the merchant
	Limit      int
}

// Summary totals income and expense of the user between from and to, both days included.
func (s *Service) Summary(ctx context.Context, userID string, from, to time.Time) (summary engine.Summary, err error) {
	start := time.Now()
	defer func() { s.metrics.observe("summary", start, err) }()

	if models.Day(from).After(models.Day(to)) {
		return engine.Summary{}, engine.ErrInvalidRange
	}

	transactions, err := s.store.TransactionsBetween(ctx, userID, from, to)
	if err != nil {
		return engine.Summary{}, fmt.Errorf("loading transactions: %w", err)
	}

	resolved, _, err := s.resolve(ctx, transactions, nil)
	if err != nil {
		return engine.Summary{}, err
	}

	return engine.Summarize(resolved, from, to)
}

// Transactions returns the transactions of the user matching the query, newest first.
func (s *Service) Transactions(ctx context.Context, userID string, query TransactionQuery) (transactions []engine.ResolvedTransaction, err error) {
	start := time.Now()
	defer func() { s.metrics.observe("transactions", start, err) }()

	if !query.From.IsZero() && !query.To.IsZero() && models.Day(query.From).After(models.Day(query.To)) {
		return nil, engine.ErrInvalidRange
	}

	filter := store.TransactionFilter{
		UserID:     userID,
		From:       query.From,
		To:         query.To,
		AccountID:  query.AccountID,
		CategoryID: query.CategoryID,
		Limit:      query.Limit,
	}

	// The merchant is matched here, so the limit is applied afterwards
	if query.Merchant != "" {
		filter.Limit = 0
	}

	found, err := s.store.FindTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	if query.Merchant != "" {
		found = matchMerchant(found, query.Merchant)
		if query.Limit > 0 && len(found) > query.Limit {
			found = found[:query.Limit]
		}
	}

	transactions, _, err = s.resolve(ctx, found, nil)
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

func matchMerchant(transactions []models.Transaction, pattern string) []models.Transaction {
	pattern = strings.ToLower(pattern)
	if !strings.Contains(pattern, glob.GLOB) {
		pattern = glob.GLOB + pattern + glob.GLOB
	}

	matched := make([]models.Transaction, 0)
	for _, t := range transactions {
		if glob.Glob(pattern, strings.ToLower(t.Merchant)) {
			matched = append(matched, t)
		}
	}

	return matched
}
