package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction represents money moving in or out of an account.
//
// The amount is always a non-negative magnitude. Whether it is income or
// expense is decided by the type of the category it references.
type Transaction struct {
	DefaultModel
	UserID     string          `json:"userId" gorm:"index" example:"7c2b3a44-0d36-4b8e-a3b8-4c4fdc2f1f6e"`
	AccountID  uuid.UUID       `json:"accountId" gorm:"index" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`
	CategoryID uuid.UUID       `json:"categoryId" gorm:"index" example:"dafd9a74-6aeb-46b9-9f5a-cfca624fea85"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"14.03"`
	Date       time.Time       `json:"date" gorm:"index" example:"1815-12-10T00:00:00Z"` // Calendar day of the transaction, always 00:00 UTC
	Merchant   string          `json:"merchant" example:"Grocery Store"`
	Note       string          `json:"note" example:"Weekly groceries"`
	Recurring  bool            `json:"recurring" example:"false"`
}

// AfterFind enforces dates to be in UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave
//   - truncates the date to the calendar day in UTC
//   - trims whitespace from string fields
//   - validates the transaction
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Merchant = strings.TrimSpace(t.Merchant)
	t.Note = strings.TrimSpace(t.Note)
	t.Date = Day(t.Date)

	return t.Validate()
}

// Validate verifies the transaction does not violate the data contract.
func (t Transaction) Validate() error {
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	if t.Date.IsZero() {
		return ErrMissingDate
	}

	return nil
}

// Day returns the calendar day of t as 00:00 UTC.
//
// The calendar fields of t in its own location are kept, so a transaction
// entered at 23:30 local time stays on that day.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}

	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
