// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/classrep/db"
)

// Backend types accepted by Open
const (
	TypeSQLite   = db.DriverSQLite
	TypePostgres = db.DriverPostgres
	TypePgx      = db.DriverPgx
	TypeEtcd     = "etcd"
	TypeMemory   = "memory"
)

const etcdDialTimeout = 5 * time.Second

type Options struct {
	Type          string
	DatabaseURL   string
	EtcdEndpoints []string
}

// Open builds the Store selected by opts.Type. SQL backends are migrated
// before they are returned.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Type {
	case TypeMemory:
		return NewMemory(), nil

	case TypeEtcd:
		if len(opts.EtcdEndpoints) == 0 {
			return nil, errors.New("etcd endpoints required")
		}
		return NewEtcd(opts.EtcdEndpoints, etcdDialTimeout)

	case TypeSQLite, TypePostgres, TypePgx:
		if opts.DatabaseURL == "" {
			return nil, errors.New("database URL required")
		}
		conn, err := db.Open(ctx, opts.Type, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx, conn, opts.Type); err != nil {
			conn.Close()
			return nil, err
		}
		return NewSQL(conn, opts.Type), nil
	}

	return nil, fmt.Errorf("unknown store type %q", opts.Type)
}
