// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key is absent
var ErrNotFound = errors.New("key not found")

// Store is the storage contract the election core is written against.
// There are no transactions and no compare-and-swap.
type Store interface {
	// Get returns the value for key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set creates or overwrites key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// ScanPrefix returns the values of all keys starting with prefix,
	// in unspecified order.
	ScanPrefix(ctx context.Context, prefix string) ([][]byte, error)

	Close() error
}
