// Package testutil provides a migrated SQLite database for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	dbadapter "housetasks/internal/adapter/db"
	"housetasks/internal/core/domain"
	"housetasks/internal/core/ports"
)

// OpenSQLite creates a file-backed SQLite database under t.TempDir() with
// the schema applied. It is closed when the test ends.
func OpenSQLite(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "housetasks_test.db")
	db, err := sqlx.Connect(dbadapter.DriverSQLite, dbadapter.SQLiteDSN(path))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	_, err = dbadapter.Migrate(context.Background(), db)
	require.NoError(t, err)
	return db
}

// SeedHouse inserts a house with the given counters.
func SeedHouse(t *testing.T, store ports.Store, name string, points, completed int) domain.House {
	t.Helper()

	now := time.Now().UTC()
	house := domain.House{
		Name:                name,
		Points:              points,
		CompletedTasksCount: completed,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	err := store.WithinTx(context.Background(), func(ctx context.Context, tx ports.Tx) error {
		return tx.CreateHouse(ctx, &house)
	})
	require.NoError(t, err)
	return house
}

// SeedTaskList inserts an empty task list owned by houseID.
func SeedTaskList(t *testing.T, store ports.Store, houseID uint64, name string) domain.TaskList {
	t.Helper()

	now := time.Now().UTC()
	taskList := domain.TaskList{
		HouseID:   houseID,
		Name:      name,
		Status:    domain.StatusComplete,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := store.WithinTx(context.Background(), func(ctx context.Context, tx ports.Tx) error {
		return tx.SaveTaskList(ctx, &taskList)
	})
	require.NoError(t, err)
	return taskList
}
