package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/khoaaminh1/pftui/internal/types"
	"github.com/khoaaminh1/pftui/pkg/engine"
	"github.com/khoaaminh1/pftui/pkg/models"
	"github.com/shopspring/decimal"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	overStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// table writes aligned columns. The first row is the header.
type table struct {
	w   *tabwriter.Writer
	err error
}

func newTable(w io.Writer, headers ...string) *table {
	t := &table{w: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}

	styled := make([]string, len(headers))
	separators := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = headerStyle.Render(h)
		separators[i] = strings.Repeat("─", len(h))
	}

	t.row(styled...)
	t.row(separators...)
	return t
}

func (t *table) row(columns ...string) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintln(t.w, strings.Join(columns, "\t"))
}

func (t *table) flush() error {
	if t.err != nil {
		return t.err
	}
	return t.w.Flush()
}

func title(w io.Writer, text string) error {
	_, err := fmt.Fprintf(w, "\n%s\n\n", titleStyle.Render(text))
	return err
}

func renderDashboard(w io.Writer, d engine.Dashboard) error {
	if err := title(w, fmt.Sprintf("Dashboard %s", d.Month)); err != nil {
		return err
	}

	t := newTable(w, "Income", "Expense", "Net")
	t.row(money(d.MonthIncome), money(d.MonthExpense), money(d.Net))
	if err := t.flush(); err != nil {
		return err
	}

	if err := title(w, "Spending by category"); err != nil {
		return err
	}
	if err := renderCategoryTotals(w, d.Categories); err != nil {
		return err
	}

	if err := title(w, "Cash flow"); err != nil {
		return err
	}
	t = newTable(w, "Month", "Income", "Expense", "Net")
	for i := range d.Trend.Buckets {
		t.row(
			d.Trend.Months[i],
			money(d.Trend.Incomes[i]),
			money(d.Trend.Expenses[i]),
			money(d.Trend.Incomes[i].Sub(d.Trend.Expenses[i])),
		)
	}
	if err := t.flush(); err != nil {
		return err
	}

	if err := renderBudgetUsages(w, d.Month, d.BudgetUsages); err != nil {
		return err
	}

	if err := title(w, "Recent transactions"); err != nil {
		return err
	}
	return renderTransactions(w, d.Recent)
}

func renderCategoryTotals(w io.Writer, totals []engine.CategoryTotal) error {
	if len(totals) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("(no expenses)"))
		return err
	}

	t := newTable(w, "Category", "Amount")
	for _, c := range totals {
		t.row(c.Name, money(c.Amount))
	}
	return t.flush()
}

func renderBalances(w io.Writer, balances []engine.AccountBalance) error {
	if len(balances) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("(no accounts)"))
		return err
	}

	t := newTable(w, "Account", "Type", "Status", "Currency", "Balance")
	for _, b := range balances {
		t.row(b.Name, string(b.Type), string(b.Status), b.Currency, money(b.Balance))
	}
	return t.flush()
}

func renderBudgetUsages(w io.Writer, month types.Month, usages []models.BudgetUsage) error {
	if err := title(w, fmt.Sprintf("Budgets %s", month)); err != nil {
		return err
	}

	if len(usages) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("(no budgets)"))
		return err
	}

	t := newTable(w, "Category", "Spent", "Limit", "Used")
	for _, u := range usages {
		percent := fmt.Sprintf("%d%%", u.Percent)
		if u.Percent > 100 {
			percent = overStyle.Render(percent)
		}
		t.row(u.CategoryName, money(u.Spent), money(u.Limit), percent)
	}
	return t.flush()
}

func renderSummary(w io.Writer, s engine.Summary) error {
	if err := title(w, fmt.Sprintf("Summary %s to %s", s.From.Format(dateLayout), s.To.Format(dateLayout))); err != nil {
		return err
	}

	t := newTable(w, "Income", "Expense", "Net")
	t.row(money(s.Income), money(s.Expense), money(s.Net))
	if err := t.flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return renderCategoryTotals(w, s.Categories)
}

func renderTransactions(w io.Writer, transactions []engine.ResolvedTransaction) error {
	if len(transactions) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("(no transactions)"))
		return err
	}

	t := newTable(w, "Date", "Account", "Category", "Merchant", "Amount")
	for _, tx := range transactions {
		account := mutedStyle.Render("(unknown)")
		if tx.Account != nil {
			account = tx.Account.Name
		}

		category := mutedStyle.Render("(unknown)")
		amount := money(tx.Amount)
		if tx.Category != nil {
			category = tx.Category.Name
			if tx.Category.IsExpense() {
				amount = "-" + amount
			}
		}

		t.row(tx.Date.Format(dateLayout), account, category, tx.Merchant, amount)
	}
	return t.flush()
}
