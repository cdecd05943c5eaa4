// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package kvstore

import (
	"context"
	"fmt"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// Etcd maps the Store contract directly onto the etcd v3 KV API.
type Etcd struct {
	cli *clientv3.Client
}

// NewEtcd dials the given endpoints.
func NewEtcd(endpoints []string, dialTimeout time.Duration) (*Etcd, error) {
	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: dialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to etcd: %w", err)
	}
	return &Etcd{cli: cli}, nil
}

// NewEtcdFromClient wraps an existing client. Close closes it.
func NewEtcdFromClient(cli *clientv3.Client) *Etcd {
	return &Etcd{cli: cli}
}

func (e *Etcd) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := e.cli.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	if len(resp.Kvs) == 0 {
		return nil, ErrNotFound
	}
	return resp.Kvs[0].Value, nil
}

func (e *Etcd) Set(ctx context.Context, key string, value []byte) error {
	if _, err := e.cli.Put(ctx, key, string(value)); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (e *Etcd) Delete(ctx context.Context, key string) error {
	if _, err := e.cli.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (e *Etcd) ScanPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	resp, err := e.cli.Get(ctx, prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", prefix, err)
	}

	values := make([][]byte, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		values = append(values, kv.Value)
	}
	return values, nil
}

func (e *Etcd) Close() error {
	return e.cli.Close()
}
