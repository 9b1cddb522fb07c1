// Package storetest provides migrated SQLite stores for tests.
package storetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/corray333/backend-labs/payreport/internal/dal/store"
	"github.com/stretchr/testify/require"
)

// NewSQLite returns a client on an empty database file under t.TempDir.
func NewSQLite(t *testing.T) *store.Client {
	t.Helper()

	client, err := store.NewClient(context.Background(), store.Config{
		Driver:     store.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "ecommerce.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

// NewMigratedSQLite returns a client whose schema is already in place.
func NewMigratedSQLite(t *testing.T) *store.Client {
	t.Helper()

	client := NewSQLite(t)
	require.NoError(t, client.Migrate(context.Background()))

	return client
}
