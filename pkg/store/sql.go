package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khoaaminh1/pftui/internal/types"
	"github.com/khoaaminh1/pftui/pkg/models"
	"gorm.io/gorm"
)

const recentOrder = "date DESC, created_at DESC, id ASC"

// SQL is a Store backed by a gorm database.
type SQL struct {
	db *gorm.DB
}

// NewSQL returns a Store for the database. The database must be migrated.
func NewSQL(db *gorm.DB) *SQL {
	return &SQL{db: db}
}

func (s *SQL) Account(ctx context.Context, userID string, id uuid.UUID) (models.Account, error) {
	var account models.Account
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&account, "id = ?", id).Error
	if err != nil {
		return models.Account{}, fmt.Errorf("account %s of user %s: %w", id, userID, err)
	}

	return account, nil
}

func (s *SQL) AccountsByUser(ctx context.Context, userID string) ([]models.Account, error) {
	var accounts []models.Account
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC, id ASC").Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("accounts of user %s: %w", userID, err)
	}

	return accounts, nil
}

func (s *SQL) AccountsByID(ctx context.Context, ids []uuid.UUID) ([]models.Account, error) {
	accounts := make([]models.Account, 0)
	if len(ids) == 0 {
		return accounts, nil
	}

	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("accounts by id: %w", err)
	}

	return accounts, nil
}

func (s *SQL) CategoriesByID(ctx context.Context, ids []uuid.UUID) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if len(ids) == 0 {
		return categories, nil
	}

	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("categories by id: %w", err)
	}

	return categories, nil
}

func (s *SQL) TransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.FindTransactions(ctx, TransactionFilter{UserID: userID})
}

func (s *SQL) TransactionsBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Transaction, error) {
	return s.FindTransactions(ctx, TransactionFilter{UserID: userID, From: from, To: to})
}

func (s *SQL) RecentTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	return s.FindTransactions(ctx, TransactionFilter{UserID: userID, Limit: limit})
}

func (s *SQL) FindTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", filter.UserID)

	if !filter.From.IsZero() {
		query = query.Where("date >= ?", models.Day(filter.From))
	}

	if !filter.To.IsZero() {
		query = query.Where("date < ?", dayAfter(filter.To))
	}

	if filter.AccountID != uuid.Nil {
		query = query.Where("account_id = ?", filter.AccountID)
	}

	if filter.CategoryID != uuid.Nil {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var transactions []models.Transaction
	err := query.Order(recentOrder).Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("transactions of user %s: %w", filter.UserID, err)
	}

	return transactions, nil
}

func (s *SQL) BudgetsForMonth(ctx context.Context, userID string, month types.Month) ([]models.Budget, error) {
	var budgets []models.Budget
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, month.Year(), int(month.Month())).
		Order("created_at ASC, id ASC").
		Find(&budgets).Error
	if err != nil {
		return nil, fmt.Errorf("budgets of user %s for %s: %w", userID, month, err)
	}

	return budgets, nil
}

func (s *SQL) SystemCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).Where("`system` = ?", true).Order("type DESC, name ASC").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("system categories: %w", err)
	}

	return categories, nil
}

func (s *SQL) CreateCategories(ctx context.Context, categories []models.Category) error {
	return create(ctx, s.db, categories)
}

func (s *SQL) CreateAccounts(ctx context.Context, accounts []models.Account) error {
	return create(ctx, s.db, accounts)
}

func (s *SQL) CreateTransactions(ctx context.Context, transactions []models.Transaction) error {
	return create(ctx, s.db, transactions)
}

func (s *SQL) CreateBudgets(ctx context.Context, budgets []models.Budget) error {
	return create(ctx, s.db, budgets)
}

// Close closes the underlying database connection.
func (s *SQL) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// create inserts all values in one statement.
func create[T any](ctx context.Context, db *gorm.DB, values []T) error {
	if len(values) == 0 {
		return nil
	}

	if err := db.WithContext(ctx).Create(&values).Error; err != nil {
		return fmt.Errorf("creating %T: %w", values, err)
	}

	return nil
}
