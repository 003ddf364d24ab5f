// Package store persists accounts, categories, transactions and budgets.
//
// SQL stores them in SQLite through gorm, Mongo in a MongoDB database.
// Both implement Store.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/khoaaminh1/pftui/internal/types"
	"github.com/khoaaminh1/pftui/pkg/models"
)

// TransactionFilter selects transactions of one user.
type TransactionFilter struct {
	UserID     string
	From       time.Time // Zero means no lower bound
	To         time.Time // Zero means no upper bound. The day itself is included
	AccountID  uuid.UUID // Nil matches all accounts
	CategoryID uuid.UUID // Nil matches all categories
	Limit      int       // 0 means no limit
}

// Reader contains all read operations.
//
// Lookups by ID return only the resources that exist, in no particular
// order. A missing ID is not an error.
type Reader interface {
	// Account returns one account of the user. It fails with
	// models.ErrResourceNotFound if the user has no such account.
	Account(ctx context.Context, userID string, id uuid.UUID) (models.Account, error)
	AccountsByUser(ctx context.Context, userID string) ([]models.Account, error)
	AccountsByID(ctx context.Context, ids []uuid.UUID) ([]models.Account, error)
	CategoriesByID(ctx context.Context, ids []uuid.UUID) ([]models.Category, error)
	TransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error)
	TransactionsBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Transaction, error)
	RecentTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error)
	BudgetsForMonth(ctx context.Context, userID string, month types.Month) ([]models.Budget, error)
	FindTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error)
}

// Writer creates resources. IDs are set on the passed values.
type Writer interface {
	SystemCategories(ctx context.Context) ([]models.Category, error)
	CreateCategories(ctx context.Context, categories []models.Category) error
	CreateAccounts(ctx context.Context, accounts []models.Account) error
	CreateTransactions(ctx context.Context, transactions []models.Transaction) error
	CreateBudgets(ctx context.Context, budgets []models.Budget) error
}

// Store is a complete storage backend.
type Store interface {
	Reader
	Writer
	Close(ctx context.Context) error
}

// dayAfter returns the start of the day after t, for exclusive upper bounds.
func dayAfter(t time.Time) time.Time {
	return models.Day(t).AddDate(0, 0, 1)
}
