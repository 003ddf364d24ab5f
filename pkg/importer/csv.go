// Package importer parses bank exports into transactions.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/khoaaminh1/pftui/pkg/models"
	"github.com/shopspring/decimal"
)

// Columns of the CSV file. The first line is a header and is skipped.
const (
	Date = iota
	Payee
	Category
	Memo
	Outflow
	Inflow
)

const dateLayout = "01/02/2006"

// Target describes where parsed transactions go.
type Target struct {
	UserID     string
	Account    models.Account
	Categories []models.Category // Categories that can be referenced by name in the Category column
	Income     uuid.UUID         // Category for inflows without a category
	Expense    uuid.UUID         // Category for outflows without a category
}

// Parse parses a CSV file with the columns Date, Payee, Category, Memo,
// Outflow and Inflow into transactions of the target account.
//
// Dates use the MM/DD/YYYY format. Exactly one of Outflow and Inflow must be
// set. Category names are matched case insensitively and must have the type
// matching the direction of the transaction.
func Parse(f io.Reader, target Target) ([]models.Transaction, error) {
	reader := csv.NewReader(f)

	// We can reuse the array in the background to improve performance
	reader.ReuseRecord = true
	reader.FieldsPerRecord = Inflow + 1

	categories := make(map[string]models.Category, len(target.Categories))
	for _, c := range target.Categories {
		categories[strings.ToLower(c.Name)] = c
	}

	transactions := []models.Transaction{}

	// Skip the first line
	_, err := reader.Read()
	if err == io.EOF {
		return transactions, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read header of CSV: %w", err)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return []models.Transaction{}, fmt.Errorf("error in line %d of the CSV: could not read line in CSV: %w", parseErr.Line, err)
		}
		if err != nil {
			return nil, fmt.Errorf("could not read CSV: %w", err)
		}

		date, err := time.Parse(dateLayout, record[Date])
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not parse time: %w", err))
		}

		t := models.Transaction{
			UserID:    target.UserID,
			AccountID: target.Account.ID,
			Date:      date,
			Merchant:  strings.TrimSpace(record[Payee]),
			Note:      strings.TrimSpace(record[Memo]),
		}

		var categoryType models.CategoryType
		var field string
		switch {
		case record[Outflow] != "" && record[Inflow] != "":
			return csvReadError(reader, errors.New("both outflow and inflow are set for the transaction"))
		case record[Outflow] == "" && record[Inflow] == "":
			return csvReadError(reader, errors.New("no amount is set for the transaction"))
		case record[Outflow] != "":
			field, categoryType, t.CategoryID = "outflow", models.CategoryTypeExpense, target.Expense
			t.Amount, err = decimal.NewFromString(record[Outflow])
		default:
			field, categoryType, t.CategoryID = "inflow", models.CategoryTypeIncome, target.Income
			t.Amount, err = decimal.NewFromString(record[Inflow])
		}

		if err != nil {
			return csvReadError(reader, fmt.Errorf("%s could not be parsed to a decimal", field))
		}

		if t.Amount.IsZero() {
			return csvReadError(reader, errors.New("the amount for a transaction must not be 0"))
		}

		if t.Amount.IsNegative() {
			return csvReadError(reader, fmt.Errorf("%s must not be negative", field))
		}

		if name := strings.TrimSpace(record[Category]); name != "" {
			c, ok := categories[strings.ToLower(name)]
			if !ok {
				return csvReadError(reader, fmt.Errorf("category %q does not exist", name))
			}

			if c.Type != categoryType {
				return csvReadError(reader, fmt.Errorf("category %q is not an %s category", name, strings.ToLower(string(categoryType))))
			}

			t.CategoryID = c.ID
		}

		transactions = append(transactions, t)
	}

	return transactions, nil
}

// csvReadError returns the an error with the format string, including the line of the input
// the error occurred in in the message.
func csvReadError(r *csv.Reader, err error) ([]models.Transaction, error) {
	// always use the first field, we are only interested in the line
	line, _ := r.FieldPos(0)

	return []models.Transaction{}, fmt.Errorf("error in line %d of the CSV: %w", line, err)
}
