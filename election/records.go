// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danielhkuo/classrep/kvstore"
	"github.com/danielhkuo/classrep/models"
)

// Key prefixes
const (
	prefixVoter     = "voter:"
	prefixCandidate = "candidate:"
	prefixVote      = "vote:"
	prefixSnapshot  = "snapshot:"
)

// records reads and writes the JSON-encoded domain records
type records struct {
	kv kvstore.Store
}

func getJSON(ctx context.Context, kv kvstore.Store, key string, v any) error {
	data, err := kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func putJSON(ctx context.Context, kv kvstore.Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, data)
}

// voterExists reports whether a VoterRecord exists for key
func (r records) voterExists(ctx context.Context, key string) (bool, error) {
	_, err := r.kv.Get(ctx, prefixVoter+key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check voter: %w", err)
	}
	return true, nil
}

// voter returns kvstore.ErrNotFound when absent
func (r records) voter(ctx context.Context, key string) (models.Voter, error) {
	var v models.Voter
	err := getJSON(ctx, r.kv, prefixVoter+key, &v)
	return v, err
}

func (r records) putVoter(ctx context.Context, key string, v models.Voter) error {
	return putJSON(ctx, r.kv, prefixVoter+key, v)
}

// candidate returns kvstore.ErrNotFound when absent
func (r records) candidate(ctx context.Context, id string) (models.Candidate, error) {
	var c models.Candidate
	err := getJSON(ctx, r.kv, prefixCandidate+id, &c)
	return c, err
}

func (r records) putCandidate(ctx context.Context, c models.Candidate) error {
	return putJSON(ctx, r.kv, prefixCandidate+c.ID, c)
}

func (r records) candidates(ctx context.Context) ([]models.Candidate, error) {
	values, err := r.kv.ScanPrefix(ctx, prefixCandidate)
	if err != nil {
		return nil, fmt.Errorf("failed to scan candidates: %w", err)
	}

	out := make([]models.Candidate, 0, len(values))
	for _, data := range values {
		var c models.Candidate
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to decode candidate: %w", err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (r records) putVote(ctx context.Context, v models.Vote) error {
	return putJSON(ctx, r.kv, prefixVote+v.ID, v)
}

func (r records) votes(ctx context.Context) ([]models.Vote, error) {
	values, err := r.kv.ScanPrefix(ctx, prefixVote)
	if err != nil {
		return nil, fmt.Errorf("failed to scan votes: %w", err)
	}

	out := make([]models.Vote, 0, len(values))
	for _, data := range values {
		var v models.Vote
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to decode vote: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (r records) putSnapshot(ctx context.Context, s models.ResultSnapshot) error {
	return putJSON(ctx, r.kv, prefixSnapshot+s.ID, s)
}

func (r records) snapshot(ctx context.Context, id string) (models.ResultSnapshot, error) {
	var s models.ResultSnapshot
	err := getJSON(ctx, r.kv, prefixSnapshot+id, &s)
	return s, err
}
