package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/khoaaminh1/pftui/internal/types"
	"github.com/khoaaminh1/pftui/pkg/models"
	"github.com/khoaaminh1/pftui/pkg/store"
	"github.com/khoaaminh1/pftui/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const user = "user-1"

type SQLSuite struct {
	suite.Suite
	store *store.SQL
	ctx   context.Context
}

// Pseudo-Test run by go test that runs the test suite.
func TestSQLSuite(t *testing.T) {
	suite.Run(t, new(SQLSuite))
}

// SetupTest is called before each test in the suite.
func (suite *SQLSuite) SetupTest() {
	suite.store = test.SQLStore(suite.T())
	suite.ctx = context.Background()
}

func (suite *SQLSuite) createTestCategory(c models.Category) models.Category {
	if c.Type == "" {
		c.Type = models.CategoryTypeExpense
	}

	categories := []models.Category{c}
	require.Nil(suite.T(), suite.store.CreateCategories(suite.ctx, categories))
	return categories[0]
}

func (suite *SQLSuite) createTestAccount(a models.Account) models.Account {
	if a.Type == "" {
		a.Type = models.AccountTypeChecking
	}
	if a.Currency == "" {
		a.Currency = "USD"
	}

	accounts := []models.Account{a}
	require.Nil(suite.T(), suite.store.CreateAccounts(suite.ctx, accounts))
	return accounts[0]
}

func (suite *SQLSuite) createTestTransaction(t models.Transaction) models.Transaction {
	if t.UserID == "" {
		t.UserID = user
	}

	transactions := []models.Transaction{t}
	require.Nil(suite.T(), suite.store.CreateTransactions(suite.ctx, transactions))
	return transactions[0]
}

func (suite *SQLSuite) TestAccountsByUser() {
	suite.createTestAccount(models.Account{UserID: user, Name: "Savings"})
	suite.createTestAccount(models.Account{UserID: user, Name: "Checking"})
	suite.createTestAccount(models.Account{UserID: "someone-else", Name: "Other"})

	accounts, err := suite.store.AccountsByUser(suite.ctx, user)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), accounts, 2)

	assert.Equal(suite.T(), "Checking", accounts[0].Name)
	assert.Equal(suite.T(), "Savings", accounts[1].Name)
	assert.Equal(suite.T(), models.AccountStatusActive, accounts[0].Status, "Status was not defaulted")
}

func (suite *SQLSuite) TestAccountsByID() {
	a := suite.createTestAccount(models.Account{UserID: user, Name: "Checking", InitialBalance: decimal.RequireFromString("1000.25")})
	suite.createTestAccount(models.Account{UserID: user, Name: "Savings"})

	accounts, err := suite.store.AccountsByID(suite.ctx, []uuid.UUID{a.ID, uuid.New()})
	require.Nil(suite.T(), err)
	require.Len(suite.T(), accounts, 1, "Missing IDs must be skipped")

	assert.Equal(suite.T(), a.ID, accounts[0].ID)
	assert.True(suite.T(), accounts[0].InitialBalance.Equal(decimal.RequireFromString("1000.25")), accounts[0].InitialBalance.String())
}

func (suite *SQLSuite) TestAccount() {
	a := suite.createTestAccount(models.Account{UserID: user, Name: "Checking"})
	other := suite.createTestAccount(models.Account{UserID: "someone-else", Name: "Other"})

	account, err := suite.store.Account(suite.ctx, user, a.ID)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), "Checking", account.Name)

	for _, id := range []uuid.UUID{other.ID, uuid.New()} {
		_, err = suite.store.Account(suite.ctx, user, id)
		assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
		assert.Contains(suite.T(), err.Error(), "account matching your query")
	}
}

func (suite *SQLSuite) TestLookupsWithoutIDs() {
	accounts, err := suite.store.AccountsByID(suite.ctx, nil)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), accounts, 0)

	categories, err := suite.store.CategoriesByID(suite.ctx, []uuid.UUID{})
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), categories, 0)
}

func (suite *SQLSuite) TestCategoriesByID() {
	food := suite.createTestCategory(models.Category{Name: "Food & Dining", System: true})
	userID := user
	suite.createTestCategory(models.Category{Name: "Side job", Type: models.CategoryTypeIncome, UserID: &userID})

	categories, err := suite.store.CategoriesByID(suite.ctx, []uuid.UUID{food.ID})
	require.Nil(suite.T(), err)
	require.Len(suite.T(), categories, 1)
	assert.Equal(suite.T(), "Food & Dining", categories[0].Name)
	assert.Nil(suite.T(), categories[0].UserID)
}

func (suite *SQLSuite) TestSystemCategories() {
	suite.createTestCategory(models.Category{Name: "Travel", System: true})
	suite.createTestCategory(models.Category{Name: "Salary", Type: models.CategoryTypeIncome, System: true})
	userID := user
	suite.createTestCategory(models.Category{Name: "Mine", UserID: &userID})

	categories, err := suite.store.SystemCategories(suite.ctx)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), categories, 2)
	assert.Equal(suite.T(), "Salary", categories[0].Name)
	assert.Equal(suite.T(), "Travel", categories[1].Name)
}

func (suite *SQLSuite) TestInvalidCategoryType() {
	err := suite.store.CreateCategories(suite.ctx, []models.Category{{Name: "Broken", Type: "TRANSFER"}})
	assert.ErrorIs(suite.T(), err, models.ErrInvalidCategoryType)
}

func (suite *SQLSuite) TestTransactionsBetween() {
	for _, d := range []int{30, 1, 15, 31} {
		suite.createTestTransaction(models.Transaction{
			Amount: decimal.NewFromInt(int64(d)),
			Date:   test.Date(2024, 5, d),
		})
	}
	suite.createTestTransaction(models.Transaction{Amount: decimal.NewFromInt(1), Date: test.Date(2024, 4, 30)})
	suite.createTestTransaction(models.Transaction{Amount: decimal.NewFromInt(1), Date: test.Date(2024, 6, 1)})
	suite.createTestTransaction(models.Transaction{UserID: "someone-else", Amount: decimal.NewFromInt(1), Date: test.Date(2024, 5, 2)})

	month := types.NewMonth(2024, 5)
	transactions, err := suite.store.TransactionsBetween(suite.ctx, user, month.FirstDay(), month.LastDay())
	require.Nil(suite.T(), err)
	require.Len(suite.T(), transactions, 4, "Both bounds must be included")

	for _, t := range transactions {
		assert.True(suite.T(), month.Contains(t.Date), "%s is not in %s", t.Date, month)
		assert.Equal(suite.T(), time.UTC, t.Date.Location())
	}
	assert.Equal(suite.T(), 31, transactions[0].Date.Day(), "Transactions are not sorted by date")
}

func (suite *SQLSuite) TestTransactionDateIsDay() {
	created := suite.createTestTransaction(models.Transaction{
		Amount: decimal.NewFromInt(5),
		Date:   time.Date(2024, 5, 3, 23, 30, 0, 0, time.FixedZone("ICT", 7*60*60)),
	})

	assert.Equal(suite.T(), test.Date(2024, 5, 3), created.Date)
}

func (suite *SQLSuite) TestRecentTransactions() {
	for i := 1; i <= 12; i++ {
		suite.createTestTransaction(models.Transaction{Amount: decimal.NewFromInt(1), Date: test.Date(2024, 5, i)})
	}

	transactions, err := suite.store.RecentTransactions(suite.ctx, user, 10)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), transactions, 10)
	assert.Equal(suite.T(), 12, transactions[0].Date.Day())
	assert.Equal(suite.T(), 3, transactions[9].Date.Day())
}

func (suite *SQLSuite) TestFindTransactions() {
	account := uuid.New()
	category := uuid.New()

	match := suite.createTestTransaction(models.Transaction{AccountID: account, CategoryID: category, Amount: decimal.NewFromInt(1), Date: test.Date(2024, 5, 2)})
	suite.createTestTransaction(models.Transaction{AccountID: account, CategoryID: uuid.New(), Amount: decimal.NewFromInt(1), Date: test.Date(2024, 5, 2)})
	suite.createTestTransaction(models.Transaction{AccountID: uuid.New(), CategoryID: category, Amount: decimal.NewFromInt(1), Date: test.Date(2024, 5, 2)})
	suite.createTestTransaction(models.Transaction{AccountID: account, CategoryID: category, Amount: decimal.NewFromInt(1), Date: test.Date(2024, 3, 2)})

	transactions, err := suite.store.FindTransactions(suite.ctx, store.TransactionFilter{
		UserID:     user,
		From:       test.Date(2024, 5, 1),
		AccountID:  account,
		CategoryID: category,
	})
	require.Nil(suite.T(), err)
	require.Len(suite.T(), transactions, 1)
	assert.Equal(suite.T(), match.ID, transactions[0].ID)
}

func (suite *SQLSuite) TestCreateNegativeAmount() {
	err := suite.store.CreateTransactions(suite.ctx, []models.Transaction{{UserID: user, Amount: decimal.NewFromInt(-1), Date: time.Now()}})
	assert.ErrorIs(suite.T(), err, models.ErrNegativeAmount)
}

func (suite *SQLSuite) TestBudgetsForMonth() {
	category := uuid.New()
	budgets := []models.Budget{
		{UserID: user, CategoryID: category, Month: 5, Year: 2024, LimitAmount: decimal.NewFromInt(300)},
		{UserID: user, CategoryID: uuid.New(), Month: 5, Year: 2024, LimitAmount: decimal.NewFromInt(900)},
		{UserID: user, CategoryID: category, Month: 6, Year: 2024, LimitAmount: decimal.NewFromInt(300)},
		{UserID: user, CategoryID: category, Month: 5, Year: 2023, LimitAmount: decimal.NewFromInt(300)},
	}
	require.Nil(suite.T(), suite.store.CreateBudgets(suite.ctx, budgets))

	found, err := suite.store.BudgetsForMonth(suite.ctx, user, types.NewMonth(2024, 5))
	require.Nil(suite.T(), err)
	require.Len(suite.T(), found, 2)
	assert.ElementsMatch(suite.T(), []uuid.UUID{budgets[0].ID, budgets[1].ID}, []uuid.UUID{found[0].ID, found[1].ID})
}

func (suite *SQLSuite) TestBudgetNotUnique() {
	category := uuid.New()
	budget := models.Budget{UserID: user, CategoryID: category, Month: 5, Year: 2024, LimitAmount: decimal.NewFromInt(300)}

	require.Nil(suite.T(), suite.store.CreateBudgets(suite.ctx, []models.Budget{budget}))

	err := suite.store.CreateBudgets(suite.ctx, []models.Budget{budget})
	assert.ErrorIs(suite.T(), err, models.ErrBudgetNotUnique)
}

func (suite *SQLSuite) TestInvalidBudgetMonth() {
	err := suite.store.CreateBudgets(suite.ctx, []models.Budget{{UserID: user, CategoryID: uuid.New(), Month: 0, Year: 2024}})
	assert.ErrorIs(suite.T(), err, models.ErrInvalidBudgetMonth)
}

func (suite *SQLSuite) TestClosedDatabase() {
	require.Nil(suite.T(), suite.store.Close(suite.ctx))

	_, err := suite.store.AccountsByUser(suite.ctx, user)
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
