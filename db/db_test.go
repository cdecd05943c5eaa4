// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported(DriverSQLite))
	assert.True(t, IsSupported(DriverPostgres))
	assert.True(t, IsSupported(DriverPgx))
	assert.False(t, IsSupported("etcd"))
	assert.False(t, IsSupported(""))
}

func TestMigrate_SQLiteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "migrate.db")

	conn, err := Open(ctx, DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, Migrate(ctx, conn, DriverSQLite))
	require.NoError(t, Migrate(ctx, conn, DriverSQLite))

	_, err = conn.ExecContext(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		"voter:abc", `{"full_name":"Alice"}`)
	require.NoError(t, err)

	var value string
	err = conn.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, "voter:abc").Scan(&value)
	require.NoError(t, err)
	assert.Equal(t, `{"full_name":"Alice"}`, value)
}
