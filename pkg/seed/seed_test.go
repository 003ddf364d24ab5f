package seed_test

import (
	"context"
	"testing"

	"github.com/khoaaminh1/pftui/internal/types"
	"github.com/khoaaminh1/pftui/pkg/models"
	"github.com/khoaaminh1/pftui/pkg/seed"
	"github.com/khoaaminh1/pftui/pkg/store"
	"github.com/khoaaminh1/pftui/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const user = "demo-user"

var now = test.Date(2024, 5, 17)

type SeedSuite struct {
	suite.Suite
	store *store.SQL
	ctx   context.Context
}

func TestSeedSuite(t *testing.T) {
	suite.Run(t, new(SeedSuite))
}

func (suite *SeedSuite) SetupTest() {
	suite.store = test.SQLStore(suite.T())
	suite.ctx = context.Background()
}

func (suite *SeedSuite) TestEnsureSystemCategories() {
	categories, err := seed.EnsureSystemCategories(suite.ctx, suite.store)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), categories, len(seed.SystemCategories()))

	for _, c := range categories {
		assert.True(suite.T(), c.System, c.Name)
		assert.NotEmpty(suite.T(), c.ID, c.Name)
	}

	// Second run does not create duplicates
	again, err := seed.EnsureSystemCategories(suite.ctx, suite.store)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), again, len(categories))

	stored, err := suite.store.SystemCategories(suite.ctx)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), stored, len(categories))
}

func (suite *SeedSuite) TestEnsureSystemCategoriesCreatesMissing() {
	require.Nil(suite.T(), suite.store.CreateCategories(suite.ctx, seed.SystemCategories()[:3]))

	categories, err := seed.EnsureSystemCategories(suite.ctx, suite.store)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), categories, len(seed.SystemCategories()))
}

func (suite *SeedSuite) TestLoadDemo() {
	demo, err := seed.LoadDemo(suite.ctx, suite.store, user, now)
	require.Nil(suite.T(), err)

	accounts, err := suite.store.AccountsByUser(suite.ctx, user)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), accounts, len(demo.Accounts))

	transactions, err := suite.store.TransactionsByUser(suite.ctx, user)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), transactions, 185)

	budgets, err := suite.store.BudgetsForMonth(suite.ctx, user, types.MonthOf(now))
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), budgets, 3)
}

func (suite *SeedSuite) TestLoadDemoTwice() {
	_, err := seed.LoadDemo(suite.ctx, suite.store, user, now)
	require.Nil(suite.T(), err)

	_, err = seed.LoadDemo(suite.ctx, suite.store, user, now)
	assert.ErrorIs(suite.T(), err, seed.ErrAlreadySeeded)
}

func categories(t *testing.T) []models.Category {
	categories := seed.SystemCategories()
	for i := range categories {
		require.Nil(t, categories[i].BeforeCreate(nil))
	}
	return categories
}

func TestGenerateDemoIsReproducible(t *testing.T) {
	categories := categories(t)

	a, err := seed.GenerateDemo(user, categories, now, seed.DemoSeed)
	require.NoError(t, err)
	b, err := seed.GenerateDemo(user, categories, now, seed.DemoSeed)
	require.NoError(t, err)

	require.Len(t, a.Transactions, len(b.Transactions))
	for i := range a.Transactions {
		assert.True(t, a.Transactions[i].Amount.Equal(b.Transactions[i].Amount))
		assert.Equal(t, a.Transactions[i].Date, b.Transactions[i].Date)
		assert.Equal(t, a.Transactions[i].Merchant, b.Transactions[i].Merchant)
		assert.Equal(t, a.Transactions[i].CategoryID, b.Transactions[i].CategoryID)
	}
}

func TestGenerateDemo(t *testing.T) {
	demo, err := seed.GenerateDemo(user, categories(t), now, seed.DemoSeed)
	require.NoError(t, err)

	earliest := now.AddDate(0, 0, -150)
	for _, tx := range demo.Transactions {
		assert.Equal(t, user, tx.UserID)
		assert.NoError(t, tx.Validate())
		assert.False(t, tx.Date.After(now), "date %s is in the future", tx.Date)
		assert.True(t, tx.Date.After(earliest) || tx.Recurring, "date %s is too old", tx.Date)
	}

	rent := 0
	for _, tx := range demo.Transactions {
		if tx.Recurring {
			rent++
			assert.Equal(t, 1, tx.Date.Day())
			assert.True(t, tx.Amount.Equal(decimal.NewFromInt(400)))
		}
	}
	assert.Equal(t, 5, rent)

	for _, b := range demo.Budgets {
		assert.Equal(t, 5, b.Month)
		assert.Equal(t, 2024, b.Year)
	}
}

func TestGenerateDemoMissingCategory(t *testing.T) {
	_, err := seed.GenerateDemo(user, nil, now, seed.DemoSeed)
	assert.Error(t, err)
}
