package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/khoaaminh1/pftui/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a monthly spending limit for one expense category.
//
// There is at most one budget per user, category, month and year. This is
// enforced by a unique index, see ErrBudgetNotUnique.
type Budget struct {
	DefaultModel
	UserID      string          `json:"userId" gorm:"uniqueIndex:budget_user_category_month" example:"7c2b3a44-0d36-4b8e-a3b8-4c4fdc2f1f6e"`
	CategoryID  uuid.UUID       `json:"categoryId" gorm:"uniqueIndex:budget_user_category_month" example:"dafd9a74-6aeb-46b9-9f5a-cfca624fea85"`
	Month       int             `json:"month" gorm:"uniqueIndex:budget_user_category_month" example:"5"` // 1 to 12
	Year        int             `json:"year" gorm:"uniqueIndex:budget_user_category_month" example:"2024"`
	LimitAmount decimal.Decimal `json:"limitAmount" gorm:"type:DECIMAL(20,8)" example:"250.00"`
}

// BeforeSave validates the budget.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	return b.Validate()
}

// Validate verifies the month of the budget.
func (b Budget) Validate() error {
	if b.Month < 1 || b.Month > 12 {
		return ErrInvalidBudgetMonth
	}

	return nil
}

// Period returns the month the budget applies to.
func (b Budget) Period() types.Month {
	return types.NewMonth(b.Year, time.Month(b.Month))
}

// BudgetUsage is the spend of one budget's category compared to its limit.
//
// It is derived for a single request and never persisted.
type BudgetUsage struct {
	CategoryName string          `json:"categoryName" example:"Groceries"`
	Spent        decimal.Decimal `json:"spent" example:"150.00"`
	Limit        decimal.Decimal `json:"limit" example:"200.00"`
	Percent      int64           `json:"percent" example:"75"` // round(spent * 100 / limit), half up. 0 when the limit is not positive
}
