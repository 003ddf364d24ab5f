package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// AccountType is the kind of money store an account represents.
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
	AccountTypeCredit   AccountType = "credit"
	AccountTypeCash     AccountType = "cash"
	AccountTypeBank     AccountType = "bank"
)

// AccountStatus tells if an account is still in use.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
)

// Account represents a user-owned account, e.g. a bank account or a wallet.
//
// The current balance is never stored. It is derived from the initial
// balance and the transactions of the account, see engine.Balance.
type Account struct {
	DefaultModel
	UserID         string          `json:"userId" gorm:"index" example:"7c2b3a44-0d36-4b8e-a3b8-4c4fdc2f1f6e"`
	Name           string          `json:"name" example:"Checking"`
	Type           AccountType     `json:"type" example:"checking"`
	Currency       string          `json:"currency" example:"USD"`
	InitialBalance decimal.Decimal `json:"initialBalance" gorm:"type:DECIMAL(20,8)" example:"1000.00"`
	Status         AccountStatus   `json:"status" example:"active"`
}

// BeforeSave trims whitespace, sets defaults and validates the account.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Currency = strings.ToUpper(strings.TrimSpace(a.Currency))

	if a.Status == "" {
		a.Status = AccountStatusActive
	}

	return a.Validate()
}

// Validate verifies the enumerated fields and the currency code.
func (a Account) Validate() error {
	switch a.Type {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCredit, AccountTypeCash, AccountTypeBank:
	default:
		return ErrInvalidAccountType
	}

	switch a.Status {
	case AccountStatusActive, AccountStatusInactive:
	default:
		return ErrInvalidAccountStatus
	}

	if _, err := currency.ParseISO(a.Currency); err != nil {
		return ErrInvalidCurrency
	}

	return nil
}

// Active reports if the account is in use.
func (a Account) Active() bool {
	return a.Status == AccountStatusActive
}
