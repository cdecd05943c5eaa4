// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/classrep/kvstore"
	"github.com/danielhkuo/classrep/models"
)

// Archiver keeps an external copy of a snapshot and returns its location.
type Archiver interface {
	ArchiveSnapshot(ctx context.Context, snap models.ResultSnapshot) (string, error)
}

// Snapshot freezes the current results under a new id. Archiving is
// best-effort; the stored snapshot records whether it succeeded.
func (b *Ballots) Snapshot(ctx context.Context) (snap models.ResultSnapshot, err error) {
	defer func() { observe(err) }()

	votes, err := b.records.votes(ctx)
	if err != nil {
		return models.ResultSnapshot{}, err
	}
	candidates, err := b.records.candidates(ctx)
	if err != nil {
		return models.ResultSnapshot{}, err
	}

	snap = models.ResultSnapshot{
		ID:         uuid.NewString(),
		ComputedAt: b.tokens.Now().UTC(),
		Results:    Tally(votes, candidates),
		InputsHash: inputsHash(votes),
	}

	if b.archiver != nil {
		uri, err := b.archiver.ArchiveSnapshot(ctx, snap)
		if err != nil {
			slog.Warn("snapshot not archived", "snapshot_id", snap.ID, "error", err)
		} else {
			snap.Archived = true
			snap.ArchiveURI = uri
		}
	}

	if err := b.records.putSnapshot(ctx, snap); err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("failed to store snapshot: %w", err)
	}

	slog.Info("results snapshot created",
		"snapshot_id", snap.ID,
		"ballots", snap.Results.BallotCount,
		"archived", snap.Archived,
	)
	return snap, nil
}

// GetSnapshot loads a stored snapshot
func (b *Ballots) GetSnapshot(ctx context.Context, id string) (snap models.ResultSnapshot, err error) {
	defer func() { observe(err) }()

	if _, perr := uuid.Parse(id); perr != nil {
		return models.ResultSnapshot{}, ErrSnapshotNotFound
	}

	snap, err = b.records.snapshot(ctx, id)
	if errors.Is(err, kvstore.ErrNotFound) {
		return models.ResultSnapshot{}, ErrSnapshotNotFound
	}
	return snap, err
}

// inputsHash fingerprints the set of votes a result was computed from
func inputsHash(votes []models.Vote) string {
	ids := make([]string, len(votes))
	for i, v := range votes {
		ids[i] = v.ID
	}
	sort.Strings(ids)

	sum := sha256.Sum256([]byte(strings.Join(ids, "\n")))
	return hex.EncodeToString(sum[:])
}
