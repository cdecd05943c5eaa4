// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package kvstore

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/classrep/db"
)

func newMockSQL(t *testing.T) (*SQL, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewSQL(conn, db.DriverPostgres), mock
}

func TestSQL_GetNotFound(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectQuery(`SELECT value FROM kv_store WHERE key = \$1`).
		WithArgs("voter:x").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := s.Get(context.Background(), "voter:x")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_GetError(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectQuery(`SELECT value FROM kv_store`).
		WillReturnError(errors.New("connection reset"))

	_, err := s.Get(context.Background(), "voter:x")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestSQL_SetSendsText(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectExec(`INSERT INTO kv_store \(key, value, updated_at\) VALUES \(\$1, \$2, \$3\)`).
		WithArgs("vote:1", `{"a":1}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Set(context.Background(), "vote:1", []byte(`{"a":1}`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_SetError(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectExec(`INSERT INTO kv_store`).
		WillReturnError(errors.New("disk full"))

	err := s.Set(context.Background(), "vote:1", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestSQL_DeleteError(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectExec(`DELETE FROM kv_store WHERE key = \$1`).
		WithArgs("voting-token:abc").
		WillReturnError(errors.New("timeout"))

	err := s.Delete(context.Background(), "voting-token:abc")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_ScanEscapesPrefix(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectQuery(`SELECT key, value FROM kv_store WHERE key LIKE \$1`).
		WithArgs(`my\_vote:%`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("my_vote:1", []byte("one")).
			AddRow("my_vote:2", []byte("two")))

	values, err := s.ScanPrefix(context.Background(), "my_vote:")
	require.NoError(t, err)
	assert.Len(t, values, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_ScanRowError(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectQuery(`SELECT key, value FROM kv_store`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("vote:1", []byte("one")).
			RowError(0, errors.New("bad row")))

	_, err := s.ScanPrefix(context.Background(), "vote:")
	require.Error(t, err)
}
