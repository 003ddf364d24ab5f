package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/khoaaminh1/pftui/internal/types"
	"github.com/khoaaminh1/pftui/internal/uuid"
	"github.com/khoaaminh1/pftui/pkg/importer"
	"github.com/khoaaminh1/pftui/pkg/seed"
	"github.com/khoaaminh1/pftui/pkg/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func (a *app) dashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard for the current month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.service.Dashboard(cmd.Context(), a.config.User)
			if err != nil {
				return err
			}

			if a.json {
				return writeJSON(a.out, d)
			}
			return renderDashboard(a.out, d)
		},
	}
}

func (a *app) balancesCommand() *cobra.Command {
	var active bool

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "List accounts with their current balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			balances, err := a.service.AccountsWithBalance(cmd.Context(), a.config.User, active)
			if err != nil {
				return err
			}

			if a.json {
				return writeJSON(a.out, balances)
			}
			return renderBalances(a.out, balances)
		},
	}

	cmd.Flags().BoolVar(&active, "active", false, "only show active accounts")
	return cmd
}

func (a *app) budgetsCommand() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Show budget usage for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := types.MonthOf(a.now())
			if month != "" {
				var err error
				m, err = types.ParseMonth(month)
				if err != nil {
					return err
				}
			}

			usages, err := a.service.BudgetUsages(cmd.Context(), a.config.User, m)
			if err != nil {
				return err
			}

			if a.json {
				return writeJSON(a.out, usages)
			}
			return renderBudgetUsages(a.out, m, usages)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month as YYYY-MM (default is the current month)")
	return cmd
}

func (a *app) summaryCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize income and expense by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			month := types.MonthOf(a.now())

			start, err := parseDate(from, month.FirstDay())
			if err != nil {
				return err
			}

			end, err := parseDate(to, month.LastDay())
			if err != nil {
				return err
			}

			summary, err := a.service.Summary(cmd.Context(), a.config.User, start, end)
			if err != nil {
				return err
			}

			if a.json {
				return writeJSON(a.out, summary)
			}
			return renderSummary(a.out, summary)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first day as YYYY-MM-DD (default is the first day of the current month)")
	cmd.Flags().StringVar(&to, "to", "", "last day as YYYY-MM-DD (default is the last day of the current month)")
	return cmd
}

func (a *app) transactionsCommand() *cobra.Command {
	var (
		from, to          string
		account, category uuid.UUID
		query             service.TransactionQuery
	)

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if query.From, err = parseDate(from, time.Time{}); err != nil {
				return err
			}

			if query.To, err = parseDate(to, time.Time{}); err != nil {
				return err
			}

			query.AccountID = account.UUID
			query.CategoryID = category.UUID

			transactions, err := a.service.Transactions(cmd.Context(), a.config.User, query)
			if err != nil {
				return err
			}

			if a.json {
				return writeJSON(a.out, transactions)
			}
			return renderTransactions(a.out, transactions)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&from, "from", "", "first day as YYYY-MM-DD")
	flags.StringVar(&to, "to", "", "last day as YYYY-MM-DD")
	flags.Var(&account, "account", "account ID")
	flags.Var(&category, "category", "category ID")
	flags.StringVar(&query.Merchant, "merchant", "", "merchant pattern, * matches any text")
	flags.IntVar(&query.Limit, "limit", 50, "maximum number of transactions, 0 for all")
	return cmd
}

func (a *app) seedCommand() *cobra.Command {
	var demo bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create system categories and demo data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !demo {
				categories, err := seed.EnsureSystemCategories(cmd.Context(), a.store)
				if err != nil {
					return err
				}

				log.Info().Int("categories", len(categories)).Msg("system categories ready")
				return nil
			}

			d, err := seed.LoadDemo(cmd.Context(), a.store, a.config.User, a.now())
			if err != nil {
				return err
			}

			log.Info().
				Str("user", a.config.User).
				Int("accounts", len(d.Accounts)).
				Int("transactions", len(d.Transactions)).
				Int("budgets", len(d.Budgets)).
				Msg("demo data created")
			return nil
		},
	}

	cmd.Flags().BoolVar(&demo, "demo", false, "also create demo accounts, transactions and budgets for the user")
	return cmd
}

func (a *app) importCommand() *cobra.Command {
	var account uuid.UUID

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import transactions from a CSV bank export",
		Long: `Import transactions from a CSV file with the columns
Date, Payee, Category, Memo, Outflow and Inflow. Dates use MM/DD/YYYY.

Rows without a category are imported as Other Income or Other Expense.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			into, err := a.store.Account(ctx, a.config.User, account.UUID)
			if err != nil {
				return err
			}

			categories, err := seed.EnsureSystemCategories(ctx, a.store)
			if err != nil {
				return err
			}

			target := importer.Target{
				UserID:     a.config.User,
				Account:    into,
				Categories: categories,
			}
			for _, c := range categories {
				switch c.Name {
				case seed.OtherIncome:
					target.Income = c.ID
				case seed.OtherExpense:
					target.Expense = c.ID
				}
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			transactions, err := importer.Parse(f, target)
			if err != nil {
				return err
			}

			if err := a.store.CreateTransactions(ctx, transactions); err != nil {
				return err
			}

			log.Info().Str("account", into.Name).Int("transactions", len(transactions)).Msg("transactions imported")
			return nil
		},
	}

	cmd.Flags().Var(&account, "account", "account ID to import into")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func (a *app) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and system categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The schema is migrated when the store is opened
			categories, err := seed.EnsureSystemCategories(cmd.Context(), a.store)
			if err != nil {
				return err
			}

			log.Info().Str("driver", a.config.Database.Driver).Int("categories", len(categories)).Msg("database migrated")
			return nil
		},
	}
}

func parseDate(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}

	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", value)
	}

	return t, nil
}
