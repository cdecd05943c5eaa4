// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tokens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/classrep/auth"
	"github.com/danielhkuo/classrep/kvstore"
)

// IDBytes is the amount of randomness in a token id (128 bits)
const IDBytes = 16

// ErrNotFound means the token was never issued or has been consumed.
var ErrNotFound = errors.New("token not found")

// Kind doubles as the key prefix for tokens of that kind
type Kind string

const (
	KindRegistration Kind = "registration-token"
	KindVoting       Kind = "voting-token"
)

// Token is a resolved token. Payload is opaque to this package.
type Token struct {
	ID        string
	Kind      Kind
	Payload   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token is past its expiry at now.
func (t Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

type record struct {
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store issues, resolves and consumes single-use tokens on top of a kvstore.
// It never checks expiry itself.
type Store struct {
	kv  kvstore.Store
	now func() time.Time
}

// New returns a Store. A nil clock means time.Now.
func New(kv kvstore.Store, clock func() time.Time) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{kv: kv, now: clock}
}

func key(kind Kind, id string) string {
	return string(kind) + ":" + id
}

// Issue persists payload under a fresh random id that expires after ttl.
func (s *Store) Issue(ctx context.Context, kind Kind, payload string, ttl time.Duration) (Token, error) {
	id, err := auth.GenerateID(IDBytes)
	if err != nil {
		return Token{}, fmt.Errorf("failed to generate token id: %w", err)
	}

	now := s.now().UTC()
	rec := record{
		Payload:   payload,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return Token{}, fmt.Errorf("failed to encode token: %w", err)
	}
	if err := s.kv.Set(ctx, key(kind, id), data); err != nil {
		return Token{}, fmt.Errorf("failed to store token: %w", err)
	}

	return Token{
		ID:        id,
		Kind:      kind,
		Payload:   rec.Payload,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

// Resolve looks the token up. Ids that could not have been issued are
// rejected without touching the store.
func (s *Store) Resolve(ctx context.Context, kind Kind, id string) (Token, error) {
	if !auth.IsHexID(id, IDBytes) {
		return Token{}, ErrNotFound
	}

	data, err := s.kv.Get(ctx, key(kind, id))
	if errors.Is(err, kvstore.ErrNotFound) {
		return Token{}, ErrNotFound
	}
	if err != nil {
		return Token{}, fmt.Errorf("failed to load token: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Token{}, fmt.Errorf("failed to decode token: %w", err)
	}

	return Token{
		ID:        id,
		Kind:      kind,
		Payload:   rec.Payload,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

// Consume deletes the token. Consuming an absent token is not an error.
func (s *Store) Consume(ctx context.Context, kind Kind, id string) error {
	if !auth.IsHexID(id, IDBytes) {
		return nil
	}
	if err := s.kv.Delete(ctx, key(kind, id)); err != nil {
		return fmt.Errorf("failed to consume token: %w", err)
	}
	return nil
}

// Now returns the store's current time
func (s *Store) Now() time.Time {
	return s.now()
}
