// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/classrep/db"
)

// SQL stores keys in the kv_store table created by db.Migrate.
// It works with every driver db.Open supports; only the placeholder
// style differs between SQLite and PostgreSQL.
type SQL struct {
	db *sql.DB

	getQuery    string
	setQuery    string
	deleteQuery string
	scanQuery   string
}

func NewSQL(conn *sql.DB, driver string) *SQL {
	p := func(n int) string { return fmt.Sprintf("$%d", n) }
	if driver == db.DriverSQLite {
		p = func(int) string { return "?" }
	}

	return &SQL{
		db:       conn,
		getQuery: `SELECT value FROM kv_store WHERE key = ` + p(1),
		setQuery: `INSERT INTO kv_store (key, value, updated_at) VALUES (` + p(1) + `, ` + p(2) + `, ` + p(3) + `)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		deleteQuery: `DELETE FROM kv_store WHERE key = ` + p(1),
		scanQuery:   `SELECT key, value FROM kv_store WHERE key LIKE ` + p(1) + ` ESCAPE '\'`,
	}
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.getQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	// Values are JSON text; lib/pq would send []byte as bytea
	_, err := s.db.ExecContext(ctx, s.setQuery, key, string(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.deleteQuery, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *SQL) ScanPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx, s.scanQuery, escapeLike(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", prefix, err)
	}
	defer rows.Close()

	var values [][]byte
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		// SQLite LIKE ignores ASCII case
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return values, nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
