// Package seed creates the system categories and optional demo data.
package seed

import (
	"context"
	"fmt"

	"github.com/khoaaminh1/pftui/pkg/models"
	"github.com/khoaaminh1/pftui/pkg/store"
)

// Uncategorized transactions fall back to these system categories.
const (
	OtherIncome  = "Other Income"
	OtherExpense = "Other Expense"
)

// SystemCategories returns the categories shared by all users.
func SystemCategories() []models.Category {
	return []models.Category{
		{Name: "Salary", Type: models.CategoryTypeIncome, Icon: "ri-money-dollar-circle-line", System: true},
		{Name: "Freelance", Type: models.CategoryTypeIncome, Icon: "ri-briefcase-line", System: true},
		{Name: "Investment", Type: models.CategoryTypeIncome, Icon: "ri-line-chart-line", System: true},
		{Name: "Gift", Type: models.CategoryTypeIncome, Icon: "ri-gift-line", System: true},
		{Name: OtherIncome, Type: models.CategoryTypeIncome, Icon: "ri-add-circle-line", System: true},
		{Name: "Food & Dining", Type: models.CategoryTypeExpense, Icon: "ri-restaurant-line", System: true},
		{Name: "Shopping", Type: models.CategoryTypeExpense, Icon: "ri-shopping-bag-line", System: true},
		{Name: "Transportation", Type: models.CategoryTypeExpense, Icon: "ri-car-line", System: true},
		{Name: "Entertainment", Type: models.CategoryTypeExpense, Icon: "ri-movie-line", System: true},
		{Name: "Bills & Utilities", Type: models.CategoryTypeExpense, Icon: "ri-file-list-line", System: true},
		{Name: "Healthcare", Type: models.CategoryTypeExpense, Icon: "ri-heart-pulse-line", System: true},
		{Name: "Education", Type: models.CategoryTypeExpense, Icon: "ri-book-line", System: true},
		{Name: "Travel", Type: models.CategoryTypeExpense, Icon: "ri-plane-line", System: true},
		{Name: OtherExpense, Type: models.CategoryTypeExpense, Icon: "ri-more-line", System: true},
	}
}

// EnsureSystemCategories creates the system categories that do not exist yet
// and returns all system categories.
//
// Existing categories are matched by name, so running it again is a no-op.
func EnsureSystemCategories(ctx context.Context, s store.Store) ([]models.Category, error) {
	existing, err := s.SystemCategories(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool, len(existing))
	for _, c := range existing {
		names[c.Name] = true
	}

	missing := make([]models.Category, 0)
	for _, c := range SystemCategories() {
		if !names[c.Name] {
			missing = append(missing, c)
		}
	}

	if len(missing) == 0 {
		return existing, nil
	}

	if err := s.CreateCategories(ctx, missing); err != nil {
		return nil, fmt.Errorf("creating system categories: %w", err)
	}

	return append(existing, missing...), nil
}
