// Package test contains helpers shared by the tests of all packages.
package test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/khoaaminh1/pftui/pkg/database"
	"github.com/khoaaminh1/pftui/pkg/store"
	"github.com/stretchr/testify/require"
)

// TmpFile returns the path to a unique file to be used in tests
func TmpFile(t *testing.T) string {
	dir := t.TempDir()
	return filepath.Join(dir, uuid.New().String())
}

// SQLStore returns a store backed by a fresh, migrated SQLite database.
// It is closed when the test finishes.
func SQLStore(t *testing.T) *store.SQL {
	db, err := database.Connect(TmpFile(t))
	require.Nil(t, err, "Database connection failed")

	s := store.NewSQL(db)
	t.Cleanup(func() {
		_ = s.Close(context.Background())
	})

	return s
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
