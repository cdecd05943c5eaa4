// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens SQL connections and applies the schema.

# Drivers

Three database/sql drivers are registered by importing this package:

  - sqlite: modernc.org/sqlite (pure Go, default, used by tests)
  - postgres: github.com/lib/pq
  - pgx: github.com/jackc/pgx/v5/stdlib

Open verifies the connection with a ping:

	conn, err := db.Open(ctx, db.DriverSQLite, "file:classrep.db")

SQLite connections are limited to one open connection so concurrent
requests queue instead of failing with SQLITE_BUSY.

# Migrations

Migrate runs the embedded goose migrations:

	if err := db.Migrate(ctx, conn, db.DriverSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - goose tracks applied versions.

# Tables

The schema is a single key-value table; all records are JSON values
addressed by prefixed keys (see package kvstore):

	kv_store(key TEXT PRIMARY KEY, value TEXT NOT NULL, updated_at TIMESTAMP NOT NULL)
*/
package db
