package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/khoaaminh1/pftui/internal/types"
	"github.com/khoaaminh1/pftui/pkg/models"
	"github.com/khoaaminh1/pftui/pkg/store"
	"github.com/shopspring/decimal"
)

// DemoSeed makes the generated demo data reproducible.
const DemoSeed = 42

const (
	demoTransactions = 180
	demoDays         = 150
	demoRentMonths   = 5
)

var ErrAlreadySeeded = errors.New("the user already has accounts, demo data is only created for new users")

// Demo is a generated set of demo data for one user.
type Demo struct {
	Accounts     []models.Account
	Transactions []models.Transaction
	Budgets      []models.Budget
}

type demoExpense struct {
	category string
	merchant string
}

var demoExpenses = []demoExpense{
	{"Food & Dining", "Restaurant"},
	{"Transportation", "Grab/Taxi"},
	{"Shopping", "Store"},
}

var demoBudgets = []struct {
	category string
	limit    int64
}{
	{"Food & Dining", 250},
	{"Transportation", 120},
	{"Shopping", 200},
}

// GenerateDemo generates demo accounts, transactions of the last 150 days
// and budgets for the month of now.
//
// The same seed always generates the same amounts, dates and merchants.
// The categories must contain the system categories by name.
func GenerateDemo(userID string, categories []models.Category, now time.Time, seed int64) (Demo, error) {
	byName := make(map[string]uuid.UUID, len(categories))
	for _, c := range categories {
		byName[c.Name] = c.ID
	}

	category := func(name string) (uuid.UUID, error) {
		id, ok := byName[name]
		if !ok {
			return uuid.Nil, fmt.Errorf("category %q does not exist", name)
		}
		return id, nil
	}

	checking := models.Account{Name: "Checking", Type: models.AccountTypeChecking, Currency: "USD", InitialBalance: decimal.NewFromInt(5000)}
	savings := models.Account{Name: "Savings", Type: models.AccountTypeSavings, Currency: "USD", InitialBalance: decimal.NewFromInt(10000)}
	credit := models.Account{Name: "Credit Card", Type: models.AccountTypeCredit, Currency: "USD", InitialBalance: decimal.Zero}

	accounts := []models.Account{checking, savings, credit}
	for i := range accounts {
		accounts[i].ID = uuid.New()
		accounts[i].UserID = userID
	}
	spending := []uuid.UUID{accounts[0].ID, accounts[2].ID}

	salary, err := category("Salary")
	if err != nil {
		return Demo{}, err
	}

	rent, err := category("Bills & Utilities")
	if err != nil {
		return Demo{}, err
	}

	r := rand.New(rand.NewSource(seed))
	today := models.Day(now)

	transactions := make([]models.Transaction, 0, demoTransactions+demoRentMonths)
	for n := 0; n < demoTransactions; n++ {
		date := today.AddDate(0, 0, -r.Intn(demoDays))

		if r.Float64() < 0.15 {
			transactions = append(transactions, models.Transaction{
				UserID:     userID,
				AccountID:  accounts[0].ID,
				CategoryID: salary,
				Amount:     decimal.NewFromInt(int64(1000 + r.Intn(1000))),
				Date:       date,
				Merchant:   "Company Payroll",
			})
			continue
		}

		expense := demoExpenses[r.Intn(len(demoExpenses))]
		id, err := category(expense.category)
		if err != nil {
			return Demo{}, err
		}

		transactions = append(transactions, models.Transaction{
			UserID:     userID,
			AccountID:  spending[r.Intn(len(spending))],
			CategoryID: id,
			Amount:     decimal.NewFromFloat(5 + r.Float64()*80).Round(2),
			Date:       date,
			Merchant:   expense.merchant,
		})
	}

	month := types.MonthOf(now)
	for i := 0; i < demoRentMonths; i++ {
		transactions = append(transactions, models.Transaction{
			UserID:     userID,
			AccountID:  accounts[0].ID,
			CategoryID: rent,
			Amount:     decimal.NewFromInt(400),
			Date:       month.AddDate(0, -i).FirstDay(),
			Merchant:   "Landlord",
			Note:       "Monthly rent",
			Recurring:  true,
		})
	}

	budgets := make([]models.Budget, 0, len(demoBudgets))
	for _, b := range demoBudgets {
		id, err := category(b.category)
		if err != nil {
			return Demo{}, err
		}

		budgets = append(budgets, models.Budget{
			UserID:      userID,
			CategoryID:  id,
			Month:       int(month.Month()),
			Year:        month.Year(),
			LimitAmount: decimal.NewFromInt(b.limit),
		})
	}

	return Demo{Accounts: accounts, Transactions: transactions, Budgets: budgets}, nil
}

// LoadDemo creates the system categories and the demo data for a user
// without accounts.
func LoadDemo(ctx context.Context, s store.Store, userID string, now time.Time) (Demo, error) {
	existing, err := s.AccountsByUser(ctx, userID)
	if err != nil {
		return Demo{}, err
	}

	if len(existing) > 0 {
		return Demo{}, ErrAlreadySeeded
	}

	categories, err := EnsureSystemCategories(ctx, s)
	if err != nil {
		return Demo{}, err
	}

	demo, err := GenerateDemo(userID, categories, now, DemoSeed)
	if err != nil {
		return Demo{}, err
	}

	if err := s.CreateAccounts(ctx, demo.Accounts); err != nil {
		return Demo{}, fmt.Errorf("creating accounts: %w", err)
	}

	if err := s.CreateTransactions(ctx, demo.Transactions); err != nil {
		return Demo{}, fmt.Errorf("creating transactions: %w", err)
	}

	if err := s.CreateBudgets(ctx, demo.Budgets); err != nil {
		return Demo{}, fmt.Errorf("creating budgets: %w", err)
	}

	return demo, nil
}
