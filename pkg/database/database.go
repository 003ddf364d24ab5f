// Package database opens and migrates the SQLite database.
package database

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/khoaaminh1/pftui/pkg/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Connect opens the SQLite database, migrates it and configures the connection pool.
func Connect(dsn string) (*gorm.DB, error) {
	return ConnectWithLogger(dsn, log.Logger)
}

// ConnectWithLogger is Connect with a custom logger for database queries.
func ConnectWithLogger(dsn string, l zerolog.Logger) (*gorm.DB, error) {
	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger: l,
		},
	}

	// Migration runs with foreign keys disabled since sqlite
	// recreates tables when columns change
	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = Migrate(db)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Now, reconnect with foreign keys enabled
	db, err = gorm.Open(sqlite.Open(withForeignKeys(dsn)), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// This is done to prevent SQLITE_BUSY errors.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	err = registerCallbacks(db)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate migrates all models to the schema defined in the code.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(models.Account{}, models.Category{}, models.Transaction{}, models.Budget{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "?") {
		return fmt.Sprintf("%s&_pragma=foreign_keys(1)", dsn)
	}

	return fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)
}

func registerCallbacks(db *gorm.DB) error {
	err := db.Callback().Query().After("*").Register("pftui:after_query", queryCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Query().After("*").Register("pftui:after_query_general", generalCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Create().After("*").Register("pftui:after_create", createCallback)
	if err != nil {
		return err
	}

	return db.Callback().Create().After("*").Register("pftui:after_create_general", generalCallback)
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y"
		match := regexp.MustCompile("ies$")
		name = match.ReplaceAllString(name, "y")

		// Remove plural "s"
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", models.ErrResourceNotFound, name)
	}
}

// createCallback replaces constraint violations with the matching model errors
func createCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// One budget per user, category and month
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: budgets.") {
		db.Error = models.ErrBudgetNotUnique
	}
}

// generalCallback handles unspecified errors.
//
// The error is logged and replaced with ErrGeneral.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in the sql module
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = models.ErrGeneral
	}
}
