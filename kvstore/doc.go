// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package kvstore is the key-value storage layer under the election core.

# Contract

Store offers get, set, delete and prefix scan. Nothing else: no
transactions, no compare-and-swap. Everything above it is written so that
ordering within one operation, not locking, keeps the data consistent.

	value, err := store.Get(ctx, "voter:"+key)
	if errors.Is(err, kvstore.ErrNotFound) {
		...
	}

Delete is idempotent and ScanPrefix order is unspecified.

# Backends

  - Memory: process-local map, used in tests and with DATABASE_TYPE=memory
  - SQL: kv_store table over sqlite, postgres (lib/pq) or pgx
  - Etcd: etcd v3 cluster via go.etcd.io/etcd/client/v3

Open picks one from configuration:

	store, err := kvstore.Open(ctx, kvstore.Options{
		Type:        kvstore.TypeSQLite,
		DatabaseURL: "file:classrep.db",
	})

# Key Layout

Callers own the key space. The election core uses:

	voter:<voter key>
	candidate:<voter key>
	registration-token:<token id>
	voting-token:<token id>
	vote:<uuid>
	snapshot:<uuid>
*/
package kvstore
