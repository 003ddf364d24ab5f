package engine_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/khoaaminh1/pftui/pkg/engine"
	"github.com/khoaaminh1/pftui/pkg/models"
	"github.com/shopspring/decimal"
)

// now is the reference time for all engine tests.
var now = time.Date(2024, 5, 17, 14, 30, 0, 0, time.UTC)

type fixture struct {
	checking models.Account
	savings  models.Account
	salary   models.Category
	food     models.Category
	rent     models.Category
}

func newFixture() fixture {
	return fixture{
		checking: models.Account{
			DefaultModel:   models.DefaultModel{ID: uuid.New()},
			Name:           "Checking",
			Type:           models.AccountTypeChecking,
			Currency:       "USD",
			InitialBalance: decimal.NewFromInt(1000),
			Status:         models.AccountStatusActive,
		},
		savings: models.Account{
			DefaultModel:   models.DefaultModel{ID: uuid.New()},
			Name:           "Savings",
			Type:           models.AccountTypeSavings,
			Currency:       "USD",
			InitialBalance: decimal.NewFromInt(10000),
			Status:         models.AccountStatusActive,
		},
		salary: models.Category{DefaultModel: models.DefaultModel{ID: uuid.New()}, Name: "Salary", Type: models.CategoryTypeIncome},
		food:   models.Category{DefaultModel: models.DefaultModel{ID: uuid.New()}, Name: "Food & Dining", Type: models.CategoryTypeExpense},
		rent:   models.Category{DefaultModel: models.DefaultModel{ID: uuid.New()}, Name: "Bills & Utilities", Type: models.CategoryTypeExpense},
	}
}

func (f fixture) accounts() []models.Account {
	return []models.Account{f.checking, f.savings}
}

func (f fixture) categories() []models.Category {
	return []models.Category{f.salary, f.food, f.rent}
}

func transaction(account models.Account, category models.Category, amount string, date time.Time) models.Transaction {
	return models.Transaction{
		DefaultModel: models.DefaultModel{ID: uuid.New()},
		AccountID:    account.ID,
		CategoryID:   category.ID,
		Amount:       decimal.RequireFromString(amount),
		Date:         date,
	}
}

func budget(category models.Category, limit string, year int, month time.Month) models.Budget {
	return models.Budget{
		DefaultModel: models.DefaultModel{ID: uuid.New()},
		CategoryID:   category.ID,
		Month:        int(month),
		Year:         year,
		LimitAmount:  decimal.RequireFromString(limit),
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func (f fixture) resolve(transactions ...models.Transaction) []engine.ResolvedTransaction {
	return engine.ResolveTransactions(transactions, f.accounts(), f.categories())
}
