package engine

import (
	"github.com/khoaaminh1/pftui/pkg/models"
	"github.com/shopspring/decimal"
)

// AccountBalance is an account with its derived current balance.
type AccountBalance struct {
	models.Account
	Balance decimal.Decimal `json:"balance" example:"2735.17"`
}

// Balance calculates the current balance of the account.
//
// It starts at the initial balance, adds the amount of every income
// transaction and subtracts the amount of every expense transaction of the
// account. Transactions of other accounts and transactions without a
// resolved category do not change the balance.
func Balance(account models.Account, transactions []ResolvedTransaction) (decimal.Decimal, error) {
	balance := account.InitialBalance

	for _, t := range transactions {
		if t.AccountID != account.ID {
			continue
		}

		if err := validate(t); err != nil {
			return decimal.Zero, err
		}

		balance = balance.Add(effect(t))
	}

	return balance, nil
}

// Balances calculates the balance of every account from one shared list of transactions.
func Balances(accounts []models.Account, transactions []ResolvedTransaction) ([]AccountBalance, error) {
	balances := make([]AccountBalance, 0, len(accounts))

	for _, a := range accounts {
		balance, err := Balance(a, transactions)
		if err != nil {
			return nil, err
		}

		balances = append(balances, AccountBalance{Account: a, Balance: balance})
	}

	return balances, nil
}

// effect is the signed amount a transaction adds to a balance.
func effect(t ResolvedTransaction) decimal.Decimal {
	if t.Category == nil {
		return decimal.Zero
	}

	switch t.Category.Type {
	case models.CategoryTypeIncome:
		return t.Amount
	case models.CategoryTypeExpense:
		return t.Amount.Neg()
	}

	return decimal.Zero
}
