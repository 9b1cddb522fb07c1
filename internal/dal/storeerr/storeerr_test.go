package storeerr_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/corray333/backend-labs/payreport/internal/dal/store"
	"github.com/corray333/backend-labs/payreport/internal/dal/store/storetest"
	"github.com/corray333/backend-labs/payreport/internal/dal/storeerr"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf_Postgres(t *testing.T) {
	tests := []struct {
		code string
		want storeerr.Kind
	}{
		{"42P01", storeerr.KindSchemaMismatch},
		{"42703", storeerr.KindSchemaMismatch},
		{"3F000", storeerr.KindSchemaMismatch},
		{"42501", storeerr.KindPermission},
		{"28P01", storeerr.KindPermission},
		{"08006", storeerr.KindConnectivity},
		{"57P01", storeerr.KindConnectivity},
		{"23505", storeerr.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := fmt.Errorf("failed to query payment report: %w", &pgconn.PgError{Code: tt.code})
			assert.Equal(t, tt.want, storeerr.KindOf(err))
		})
	}
}

func TestKindOf_Generic(t *testing.T) {
	assert.Equal(t, storeerr.KindUnknown, storeerr.KindOf(nil))
	assert.Equal(t, storeerr.KindUnknown, storeerr.KindOf(errors.New("boom")))
	assert.Equal(t, storeerr.KindConnectivity, storeerr.KindOf(fmt.Errorf("wrapped: %w", driver.ErrBadConn)))
}

func TestKindOf_SQLiteMissingTable(t *testing.T) {
	client := storetest.NewSQLite(t)

	_, err := client.DB().ExecContext(context.Background(), "SELECT * FROM payments")
	require.Error(t, err)

	assert.True(t, storeerr.IsSchemaMismatch(err))
	assert.Equal(t, "schema_mismatch", storeerr.KindOf(err).String())
}

func TestKindOf_SQLiteUnreachablePath(t *testing.T) {
	_, err := store.NewClient(context.Background(), store.Config{
		Driver:     store.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "missing", "dir", "ecommerce.db"),
	})
	require.Error(t, err)

	assert.Equal(t, storeerr.KindConnectivity, storeerr.KindOf(err))
}
