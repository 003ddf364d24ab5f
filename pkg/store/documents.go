package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khoaaminh1/pftui/pkg/models"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoDB documents. IDs are stored as strings, amounts as Decimal128.

type accountDocument struct {
	ID             string               `bson:"_id"`
	CreatedAt      time.Time            `bson:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt"`
	UserID         string               `bson:"userId"`
	Name           string               `bson:"name"`
	Type           string               `bson:"type"`
	Currency       string               `bson:"currency"`
	InitialBalance primitive.Decimal128 `bson:"initialBalance"`
	Status         string               `bson:"status"`
}

func newAccountDocument(a models.Account) (accountDocument, error) {
	amount, err := decimal128(a.InitialBalance)
	if err != nil {
		return accountDocument{}, err
	}

	return accountDocument{
		ID:             a.ID.String(),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		UserID:         a.UserID,
		Name:           a.Name,
		Type:           string(a.Type),
		Currency:       a.Currency,
		InitialBalance: amount,
		Status:         string(a.Status),
	}, nil
}

func (d accountDocument) model() (models.Account, error) {
	base, err := defaultModel(d.ID, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return models.Account{}, err
	}

	balance, err := fromDecimal128(d.InitialBalance)
	if err != nil {
		return models.Account{}, fmt.Errorf("account %s: %w", d.ID, err)
	}

	return models.Account{
		DefaultModel:   base,
		UserID:         d.UserID,
		Name:           d.Name,
		Type:           models.AccountType(d.Type),
		Currency:       d.Currency,
		InitialBalance: balance,
		Status:         models.AccountStatus(d.Status),
	}, nil
}

type categoryDocument struct {
	ID        string    `bson:"_id"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
	UserID    *string   `bson:"userId"`
	Name      string    `bson:"name"`
	Type      string    `bson:"type"`
	Icon      string    `bson:"icon"`
	System    bool      `bson:"system"`
}

func newCategoryDocument(c models.Category) categoryDocument {
	return categoryDocument{
		ID:        c.ID.String(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		UserID:    c.UserID,
		Name:      c.Name,
		Type:      string(c.Type),
		Icon:      c.Icon,
		System:    c.System,
	}
}

func (d categoryDocument) model() (models.Category, error) {
	base, err := defaultModel(d.ID, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return models.Category{}, err
	}

	return models.Category{
		DefaultModel: base,
		UserID:       d.UserID,
		Name:         d.Name,
		Type:         models.CategoryType(d.Type),
		Icon:         d.Icon,
		System:       d.System,
	}, nil
}

type transactionDocument struct {
	ID         string               `bson:"_id"`
	CreatedAt  time.Time            `bson:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt"`
	UserID     string               `bson:"userId"`
	AccountID  string               `bson:"accountId"`
	CategoryID string               `bson:"categoryId"`
	Amount     primitive.Decimal128 `bson:"amount"`
	Date       time.Time            `bson:"date"`
	Merchant   string               `bson:"merchant,omitempty"`
	Note       string               `bson:"note,omitempty"`
	Recurring  bool                 `bson:"recurring"`
}

func newTransactionDocument(t models.Transaction) (transactionDocument, error) {
	amount, err := decimal128(t.Amount)
	if err != nil {
		return transactionDocument{}, err
	}

	return transactionDocument{
		ID:         t.ID.String(),
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
		UserID:     t.UserID,
		AccountID:  t.AccountID.String(),
		CategoryID: t.CategoryID.String(),
		Amount:     amount,
		Date:       t.Date,
		Merchant:   t.Merchant,
		Note:       t.Note,
		Recurring:  t.Recurring,
	}, nil
}

func (d transactionDocument) model() (models.Transaction, error) {
	base, err := defaultModel(d.ID, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return models.Transaction{}, err
	}

	amount, err := fromDecimal128(d.Amount)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %s: %w", d.ID, err)
	}

	return models.Transaction{
		DefaultModel: base,
		UserID:       d.UserID,
		AccountID:    reference(d.AccountID),
		CategoryID:   reference(d.CategoryID),
		Amount:       amount,
		Date:         d.Date.In(time.UTC),
		Merchant:     d.Merchant,
		Note:         d.Note,
		Recurring:    d.Recurring,
	}, nil
}

type budgetDocument struct {
	ID          string               `bson:"_id"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
	UserID      string               `bson:"userId"`
	CategoryID  string               `bson:"categoryId"`
	Month       int                  `bson:"month"`
	Year        int                  `bson:"year"`
	LimitAmount primitive.Decimal128 `bson:"limitAmount"`
}

func newBudgetDocument(b models.Budget) (budgetDocument, error) {
	amount, err := decimal128(b.LimitAmount)
	if err != nil {
		return budgetDocument{}, err
	}

	return budgetDocument{
		ID:          b.ID.String(),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		UserID:      b.UserID,
		CategoryID:  b.CategoryID.String(),
		Month:       b.Month,
		Year:        b.Year,
		LimitAmount: amount,
	}, nil
}

func (d budgetDocument) model() (models.Budget, error) {
	base, err := defaultModel(d.ID, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return models.Budget{}, err
	}

	limit, err := fromDecimal128(d.LimitAmount)
	if err != nil {
		return models.Budget{}, fmt.Errorf("budget %s: %w", d.ID, err)
	}

	return models.Budget{
		DefaultModel: base,
		UserID:       d.UserID,
		CategoryID:   reference(d.CategoryID),
		Month:        d.Month,
		Year:         d.Year,
		LimitAmount:  limit,
	}, nil
}

func defaultModel(id string, createdAt, updatedAt time.Time) (models.DefaultModel, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return models.DefaultModel{}, fmt.Errorf("invalid document id %q: %w", id, err)
	}

	return models.DefaultModel{
		ID:        parsed,
		CreatedAt: createdAt.In(time.UTC),
		UpdatedAt: updatedAt.In(time.UTC),
	}, nil
}

// reference parses a referenced ID. Unparseable references become
// uuid.Nil and are treated as dangling.
func reference(id string) uuid.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil
	}

	return parsed
}

// decimal128 fails for values with more than 34 significant digits.
func decimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	value, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("amount %s cannot be stored: %w", d, err)
	}

	return value, nil
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(d.String())
}
