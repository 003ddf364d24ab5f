package database_test

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/khoaaminh1/pftui/pkg/database"
	"github.com/khoaaminh1/pftui/pkg/models"
	"github.com/khoaaminh1/pftui/test"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateWithExistingDB(t *testing.T) {
	testDB := test.TmpFile(t)

	// Migrate the database once
	db, err := database.Connect(testDB)
	require.Nil(t, err)

	// Close the connection
	sqlDB, err := db.DB()
	require.Nil(t, err)
	sqlDB.Close()

	// Migrate it again
	_, err = database.Connect(testDB)
	require.Nil(t, err)
}

func TestConnectInvalidPath(t *testing.T) {
	_, err := database.Connect(test.TmpFile(t) + "/does/not/exist/db.sqlite")
	assert.NotNil(t, err)
}

func TestBudgetNotUnique(t *testing.T) {
	db, err := database.Connect(test.TmpFile(t))
	require.Nil(t, err)

	categoryID := uuid.New()
	create := func() error {
		return db.Create(&models.Budget{
			UserID:      "demo",
			CategoryID:  categoryID,
			Month:       5,
			Year:        2024,
			LimitAmount: decimal.NewFromInt(300),
		}).Error
	}

	require.Nil(t, create())
	assert.ErrorIs(t, create(), models.ErrBudgetNotUnique)
}

func TestResourceNotFound(t *testing.T) {
	db, err := database.Connect(test.TmpFile(t))
	require.Nil(t, err)

	var category models.Category
	err = db.First(&category, "id = ?", uuid.New()).Error

	assert.ErrorIs(t, err, models.ErrResourceNotFound)
	assert.Contains(t, err.Error(), "category matching your query")
}

func TestClosedDatabase(t *testing.T) {
	db, err := database.Connect(test.TmpFile(t))
	require.Nil(t, err)

	sqlDB, err := db.DB()
	require.Nil(t, err)
	sqlDB.Close()

	var accounts []models.Account
	err = db.Find(&accounts).Error
	assert.ErrorIs(t, err, models.ErrGeneral)
}

func TestQueryLogging(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).Level(zerolog.DebugLevel)

	db, err := database.ConnectWithLogger(test.TmpFile(t), l)
	require.Nil(t, err)

	buf.Reset()
	var accounts []models.Account
	require.Nil(t, db.Find(&accounts).Error)

	assert.Contains(t, buf.String(), "[GORM] query")
	assert.Contains(t, buf.String(), "accounts")
}
