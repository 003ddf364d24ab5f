// Package engine computes derived financial figures from transactions,
// accounts, categories and budgets.
//
// All functions are pure. They never talk to storage and never modify the
// values passed to them, so they can be called concurrently as long as every
// caller owns its input slices.
package engine

import (
	"bytes"

	"github.com/google/uuid"
	"github.com/khoaaminh1/pftui/pkg/models"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ResolvedTransaction is a transaction together with the account and
// category it references.
//
// Account and Category are nil when the reference is dangling.
type ResolvedTransaction struct {
	models.Transaction
	Account  *models.Account  `json:"account"`
	Category *models.Category `json:"category"`
}

// ResolvedBudget is a budget together with its category.
type ResolvedBudget struct {
	models.Budget
	Category *models.Category `json:"category"`
}

// TransactionReferences returns the distinct account and category IDs
// referenced by the transactions, sorted. Nil IDs are skipped.
//
// The results are meant for exactly one batch lookup each.
func TransactionReferences(transactions []models.Transaction) (accountIDs, categoryIDs []uuid.UUID) {
	accounts := make(map[uuid.UUID]struct{})
	categories := make(map[uuid.UUID]struct{})

	for _, t := range transactions {
		if t.AccountID != uuid.Nil {
			accounts[t.AccountID] = struct{}{}
		}

		if t.CategoryID != uuid.Nil {
			categories[t.CategoryID] = struct{}{}
		}
	}

	return sortedIDs(accounts), sortedIDs(categories)
}

// BudgetReferences returns the distinct category IDs referenced by the budgets, sorted.
func BudgetReferences(budgets []models.Budget) []uuid.UUID {
	categories := make(map[uuid.UUID]struct{})
	for _, b := range budgets {
		if b.CategoryID != uuid.Nil {
			categories[b.CategoryID] = struct{}{}
		}
	}

	return sortedIDs(categories)
}

// ResolveTransactions attaches accounts and categories to copies of the transactions.
//
// The order of the transactions is kept. A transaction whose account or
// category is not in the lookup results keeps a nil reference.
func ResolveTransactions(transactions []models.Transaction, accounts []models.Account, categories []models.Category) []ResolvedTransaction {
	accountMap := accountsByID(accounts)
	categoryMap := categoriesByID(categories)

	resolved := make([]ResolvedTransaction, 0, len(transactions))
	for _, t := range transactions {
		resolved = append(resolved, ResolvedTransaction{
			Transaction: t,
			Account:     accountMap[t.AccountID],
			Category:    categoryMap[t.CategoryID],
		})
	}

	return resolved
}

// ResolveBudgets attaches categories to copies of the budgets.
func ResolveBudgets(budgets []models.Budget, categories []models.Category) []ResolvedBudget {
	categoryMap := categoriesByID(categories)

	resolved := make([]ResolvedBudget, 0, len(budgets))
	for _, b := range budgets {
		resolved = append(resolved, ResolvedBudget{
			Budget:   b,
			Category: categoryMap[b.CategoryID],
		})
	}

	return resolved
}

func accountsByID(accounts []models.Account) map[uuid.UUID]*models.Account {
	m := make(map[uuid.UUID]*models.Account, len(accounts))
	for _, a := range accounts {
		account := a
		m[account.ID] = &account
	}

	return m
}

func categoriesByID(categories []models.Category) map[uuid.UUID]*models.Category {
	m := make(map[uuid.UUID]*models.Category, len(categories))
	for _, c := range categories {
		category := c
		m[category.ID] = &category
	}

	return m
}

func sortedIDs(set map[uuid.UUID]struct{}) []uuid.UUID {
	ids := maps.Keys(set)
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})

	return ids
}
