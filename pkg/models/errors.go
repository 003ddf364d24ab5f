package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrNegativeAmount       = errors.New("the amount must not be negative")
	ErrMissingDate          = errors.New("the transaction date must be set")
	ErrInvalidBudgetMonth   = errors.New("the budget month must be between 1 and 12")
	ErrBudgetNotUnique      = errors.New("a budget for this category and month already exists")
	ErrInvalidAccountType   = errors.New("the account type is not valid")
	ErrInvalidAccountStatus = errors.New("the account status is not valid")
	ErrInvalidCurrency      = errors.New("the currency is not a valid ISO 4217 code")
	ErrInvalidCategoryType  = errors.New("the category type must be INCOME or EXPENSE")
)
