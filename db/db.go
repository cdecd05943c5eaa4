// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Driver names as registered with database/sql
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

//go:embed migrations/*.sql
var migrations embed.FS

// goose keeps its base FS and dialect in package state
var gooseMu sync.Mutex

// IsSupported reports whether driver is one of the SQL drivers this package opens
func IsSupported(driver string) bool {
	switch driver {
	case DriverSQLite, DriverPostgres, DriverPgx:
		return true
	}
	return false
}

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if !IsSupported(driver) {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; serialize through one connection
	if driver == DriverSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

// Migrate applies the embedded migrations.
// Safe to call multiple times - goose records applied versions.
func Migrate(ctx context.Context, conn *sql.DB, driver string) error {
	dialect := "postgres"
	if driver == DriverSQLite {
		dialect = "sqlite3"
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, conn, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
