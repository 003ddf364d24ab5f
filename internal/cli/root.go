// Package cli implements the pftui command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/khoaaminh1/pftui/internal/config"
	"github.com/khoaaminh1/pftui/pkg/database"
	"github.com/khoaaminh1/pftui/pkg/service"
	"github.com/khoaaminh1/pftui/pkg/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	v          *viper.Viper
	configFile string
	json       bool

	out io.Writer
	log io.Writer
	now func() time.Time

	config  config.Config
	store   store.Store
	service *service.Service
}

// Option configures the root command.
type Option func(*app)

// WithOutput writes command output to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(a *app) {
		a.out = w
	}
}

// WithLogOutput writes logs to w instead of stderr.
func WithLogOutput(w io.Writer) Option {
	return func(a *app) {
		a.log = w
	}
}

// WithClock sets the function that returns the current time.
func WithClock(now func() time.Time) Option {
	return func(a *app) {
		a.now = now
	}
}

// WithStore uses s instead of opening the configured database.
func WithStore(s store.Store) Option {
	return func(a *app) {
		a.store = s
	}
}

// NewRootCommand returns the pftui command with all subcommands.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{
		v:   viper.New(),
		out: os.Stdout,
		log: os.Stderr,
		now: time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	cmd := &cobra.Command{
		Use:           "pftui",
		Short:         "Personal finance dashboard for the terminal",
		Long:          "pftui aggregates accounts, transactions and budgets into balances, budget usage, trends and a monthly dashboard.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.init(cmd.Context()); err != nil {
				return errors.Join(err, a.close(cmd.Context()))
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default is ./pftui.yaml or $HOME/.config/pftui/pftui.yaml)")
	flags.BoolVar(&a.json, "json", false, "print output as JSON")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.String("log-format", "", "log format (human, json)")
	flags.String("driver", "", "database driver (sqlite, mongo)")
	flags.String("dsn", "", "SQLite database file")
	flags.String("mongo-uri", "", "MongoDB connection string")
	flags.StringP("user", "u", "", "user to show data for")

	bindings := map[string]string{
		"log.level":          "log-level",
		"log.format":         "log-format",
		"database.driver":    "driver",
		"database.dsn":       "dsn",
		"database.mongo_uri": "mongo-uri",
		"user":               "user",
	}
	for key, flag := range bindings {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	cmd.AddCommand(
		a.dashboardCommand(),
		a.balancesCommand(),
		a.budgetsCommand(),
		a.summaryCommand(),
		a.transactionsCommand(),
		a.seedCommand(),
		a.importCommand(),
		a.migrateCommand(),
	)

	for _, c := range cmd.Commands() {
		a.closeAfter(c)
	}

	return cmd
}

// Execute runs the root command and exits with a non-zero code on errors.
func Execute(ctx context.Context) {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func (a *app) init(ctx context.Context) error {
	c, err := config.Load(a.v, a.configFile, ".env")
	if err != nil {
		return err
	}
	a.config = c

	if err := a.setupLogger(); err != nil {
		return err
	}

	if a.store == nil {
		a.store, err = a.openStore(ctx)
		if err != nil {
			return err
		}
	}

	a.service = service.New(a.store, service.WithClock(a.now), service.WithLogger(log.Logger))
	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.store == nil {
		return nil
	}

	err := a.store.Close(ctx)
	a.store = nil
	return err
}

// closeAfter makes cmd close the store when it returns, also on errors.
// cobra skips post-run hooks when RunE fails.
func (a *app) closeAfter(cmd *cobra.Command) {
	run := cmd.RunE
	cmd.RunE = func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			err = errors.Join(err, a.close(cmd.Context()))
		}()

		return run(cmd, args)
	}
}

// setupLogger configures the global logger.
//
// The human format is meant for terminals, json for log collection.
func (a *app) setupLogger() error {
	level, err := zerolog.ParseLevel(a.config.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", a.config.Log.Level, err)
	}
	zerolog.SetGlobalLevel(level)

	output := a.log
	if a.config.Log.Format == config.FormatHuman {
		output = zerolog.ConsoleWriter{Out: a.log}
	}

	log.Logger = log.Output(output).With().Timestamp().Logger()
	return nil
}

func (a *app) openStore(ctx context.Context) (store.Store, error) {
	switch a.config.Database.Driver {
	case config.DriverMongo:
		client, err := store.ConnectToMongoDB(ctx, a.config.Database.MongoURI)
		if err != nil {
			return nil, err
		}

		provider := store.NewMongoProvider(client, a.config.Database.MongoDatabase)
		if err := provider.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}

		return store.NewMongo(provider, client), nil
	default:
		// Create data directory
		if dir := filepath.Dir(a.config.Database.DSN); dir != "." {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return nil, fmt.Errorf("creating data directory: %w", err)
			}
		}

		db, err := database.ConnectWithLogger(a.config.Database.DSN, log.Logger)
		if err != nil {
			return nil, err
		}

		return store.NewSQL(db), nil
	}
}
