package engine_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/khoaaminh1/pftui/pkg/engine"
	"github.com/khoaaminh1/pftui/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionReferences(t *testing.T) {
	f := newFixture()

	transactions := []models.Transaction{
		transaction(f.checking, f.salary, "500", day(2024, 5, 1)),
		transaction(f.checking, f.food, "20", day(2024, 5, 2)),
		transaction(f.savings, f.food, "30", day(2024, 5, 3)),
		{AccountID: uuid.Nil, CategoryID: uuid.Nil},
	}

	accountIDs, categoryIDs := engine.TransactionReferences(transactions)

	assert.ElementsMatch(t, []uuid.UUID{f.checking.ID, f.savings.ID}, accountIDs)
	assert.ElementsMatch(t, []uuid.UUID{f.salary.ID, f.food.ID}, categoryIDs)
	assert.IsIncreasing(t, []string{accountIDs[0].String(), accountIDs[1].String()}, "IDs are not sorted")
}

func TestTransactionReferencesEmpty(t *testing.T) {
	accountIDs, categoryIDs := engine.TransactionReferences(nil)

	assert.Len(t, accountIDs, 0)
	assert.Len(t, categoryIDs, 0)
}

func TestBudgetReferences(t *testing.T) {
	f := newFixture()

	ids := engine.BudgetReferences([]models.Budget{
		budget(f.food, "100", 2024, 5),
		budget(f.food, "200", 2024, 6),
		budget(f.rent, "900", 2024, 5),
	})

	assert.ElementsMatch(t, []uuid.UUID{f.food.ID, f.rent.ID}, ids)
}

func TestResolveTransactions(t *testing.T) {
	f := newFixture()

	dangling := transaction(f.checking, f.food, "10", day(2024, 5, 4))
	dangling.CategoryID = uuid.New()

	orphan := transaction(f.checking, f.food, "10", day(2024, 5, 4))
	orphan.AccountID = uuid.New()

	input := []models.Transaction{
		transaction(f.checking, f.salary, "500", day(2024, 5, 1)),
		dangling,
		orphan,
	}

	resolved := engine.ResolveTransactions(input, f.accounts(), f.categories())
	require.Len(t, resolved, 3)

	assert.Equal(t, input[0].ID, resolved[0].ID, "Order was not kept")
	require.NotNil(t, resolved[0].Account)
	require.NotNil(t, resolved[0].Category)
	assert.Equal(t, "Checking", resolved[0].Account.Name)
	assert.Equal(t, "Salary", resolved[0].Category.Name)

	assert.NotNil(t, resolved[1].Account)
	assert.Nil(t, resolved[1].Category, "Dangling category was resolved")

	assert.Nil(t, resolved[2].Account, "Dangling account was resolved")
	assert.NotNil(t, resolved[2].Category)
}

func TestResolveTransactionsDoesNotModifyInput(t *testing.T) {
	f := newFixture()
	accounts := f.accounts()
	categories := f.categories()
	input := []models.Transaction{transaction(f.checking, f.food, "10", day(2024, 5, 4))}

	resolved := engine.ResolveTransactions(input, accounts, categories)
	resolved[0].Amount = resolved[0].Amount.Add(resolved[0].Amount)
	resolved[0].Category.Name = "Changed"

	assert.Equal(t, "10", input[0].Amount.String())
	assert.Equal(t, "Food & Dining", categories[1].Name)
}

func TestResolveBudgets(t *testing.T) {
	f := newFixture()

	orphan := budget(f.food, "100", 2024, 5)
	orphan.CategoryID = uuid.New()

	resolved := engine.ResolveBudgets([]models.Budget{budget(f.rent, "900", 2024, 5), orphan}, f.categories())
	require.Len(t, resolved, 2)

	require.NotNil(t, resolved[0].Category)
	assert.Equal(t, "Bills & Utilities", resolved[0].Category.Name)
	assert.Nil(t, resolved[1].Category)
}
