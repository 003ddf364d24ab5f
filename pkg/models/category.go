package models

import (
	"strings"

	"gorm.io/gorm"
)

// CategoryType decides whether transactions in a category add to or
// subtract from balances.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "INCOME"
	CategoryTypeExpense CategoryType = "EXPENSE"
)

// Category represents a category of transactions.
type Category struct {
	DefaultModel
	UserID *string      `json:"userId" gorm:"index" example:"7c2b3a44-0d36-4b8e-a3b8-4c4fdc2f1f6e"` // Owner of the category. Nil for system categories shared by all users
	Name   string       `json:"name" example:"Food & Dining"`
	Type   CategoryType `json:"type" example:"EXPENSE"`
	Icon   string       `json:"icon" example:"ri-restaurant-line"`
	System bool         `json:"system" example:"false"` // System categories are shared and cannot be deleted by users
}

// BeforeSave trims whitespace and validates the category type.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Icon = strings.TrimSpace(c.Icon)

	if c.Type != CategoryTypeIncome && c.Type != CategoryTypeExpense {
		return ErrInvalidCategoryType
	}

	return nil
}

// IsIncome reports if the category is an income category.
func (c Category) IsIncome() bool {
	return c.Type == CategoryTypeIncome
}

// IsExpense reports if the category is an expense category.
func (c Category) IsExpense() bool {
	return c.Type == CategoryTypeExpense
}
