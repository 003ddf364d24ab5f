// Package service loads data from a store and computes dashboards,
// balances, budget usage and summaries with the engine.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/khoaaminh1/pftui/internal/types"
	"github.com/khoaaminh1/pftui/pkg/models"
	"github.com/khoaaminh1/pftui/pkg/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Store is the data access the service needs.
type Store interface {
	AccountsByUser(ctx context.Context, userID string) ([]models.Account, error)
	AccountsByID(ctx context.Context, ids []uuid.UUID) ([]models.Account, error)
	CategoriesByID(ctx context.Context, ids []uuid.UUID) ([]models.Category, error)
	TransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error)
	TransactionsBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Transaction, error)
	RecentTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error)
	BudgetsForMonth(ctx context.Context, userID string, month types.Month) ([]models.Budget, error)
	FindTransactions(ctx context.Context, filter store.TransactionFilter) ([]models.Transaction, error)
}

// Service computes derived figures for one user at a time.
//
// It is safe for concurrent use if the Store is.
type Service struct {
	store   Store
	logger  zerolog.Logger
	now     func() time.Time
	metrics *metrics
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default is the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithRegisterer registers the service metrics with r instead of the default registry.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(s *Service) {
		s.metrics = newMetrics(r)
	}
}

// WithClock sets the function that returns the current time.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a Service reading from the store.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: log.Logger,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.metrics == nil {
		s.metrics = newMetrics(prometheus.DefaultRegisterer)
	}

	return s
}

// Now returns the current time of the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}
