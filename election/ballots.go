// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/classrep/auth"
	"github.com/danielhkuo/classrep/kvstore"
	"github.com/danielhkuo/classrep/metrics"
	"github.com/danielhkuo/classrep/models"
	"github.com/danielhkuo/classrep/tokens"
)

// Ballots records votes and computes results.
type Ballots struct {
	records        records
	tokens         *tokens.Store
	forbidSelfVote bool
	archiver       Archiver
}

func NewBallots(d Deps, forbidSelfVote bool, archiver Archiver) *Ballots {
	return &Ballots{
		records:        records{kv: d.Store},
		tokens:         d.Tokens,
		forbidSelfVote: forbidSelfVote,
		archiver:       archiver,
	}
}

// Submit records one weighted vote and spends the voting token.
//
// Store access happens in a fixed order: token, candidates, then the voter
// as the last read before any write. Writes follow as vote, has-voted flag,
// token delete. A retry after a partial failure stops at the voter check.
// Two tokens for the same voter submitted at the same instant can still
// both pass that check; the store offers no compare-and-swap to prevent it.
func (b *Ballots) Submit(ctx context.Context, req models.SubmitVoteRequest) (voteID string, err error) {
	defer func() { observe(err) }()

	req, err = validateSubmission(req)
	if err != nil {
		return "", err
	}

	tok, err := b.tokens.Resolve(ctx, tokens.KindVoting, req.Token)
	if errors.Is(err, tokens.ErrNotFound) {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", err
	}
	if tok.Expired(b.tokens.Now()) {
		if err := b.tokens.Consume(ctx, tokens.KindVoting, req.Token); err != nil {
			slog.Warn("failed to delete expired token", "kind", tokens.KindVoting, "error", err)
		}
		return "", ErrInvalidToken
	}

	first, err := b.candidate(ctx, req.FirstChoice)
	if err != nil {
		return "", err
	}
	second, err := b.candidate(ctx, req.SecondChoice)
	if err != nil {
		return "", err
	}

	voterKey := tok.Payload
	voter, err := b.records.voter(ctx, voterKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return "", ErrInvalidVoterOrAlreadyVoted
	}
	if err != nil {
		return "", err
	}
	if voter.HasVoted {
		return "", ErrInvalidVoterOrAlreadyVoted
	}

	if first.ClassLabel != voter.ClassLabel || second.ClassLabel != voter.ClassLabel {
		return "", invalid("candidates must be in class %s", voter.ClassLabel)
	}
	if b.forbidSelfVote && (first.ID == voterKey || second.ID == voterKey) {
		return "", invalid("you cannot vote for yourself")
	}

	now := b.tokens.Now().UTC()
	vote := models.Vote{
		ID:           uuid.NewString(),
		ClassLabel:   voter.ClassLabel,
		FirstChoice:  first.ID,
		FirstReason:  req.FirstReason,
		SecondChoice: second.ID,
		SecondReason: req.SecondReason,
		SubmittedAt:  now,
	}
	if err := b.records.putVote(ctx, vote); err != nil {
		return "", fmt.Errorf("failed to store vote: %w", err)
	}

	voter.HasVoted = true
	voter.VotedAt = &now
	if err := b.records.putVoter(ctx, voterKey, voter); err != nil {
		slog.Error("vote stored but voter not marked", "vote_id", vote.ID, "error", err)
		return "", fmt.Errorf("failed to mark voter: %w", err)
	}

	if err := b.tokens.Consume(ctx, tokens.KindVoting, req.Token); err != nil {
		slog.Warn("vote recorded but token not consumed", "error", err)
	}

	metrics.VotesRecorded.Inc()
	slog.Info("vote recorded", "class", vote.ClassLabel, "vote_id", vote.ID)
	return vote.ID, nil
}

func validateSubmission(req models.SubmitVoteRequest) (models.SubmitVoteRequest, error) {
	req.Token = strings.TrimSpace(req.Token)
	req.FirstChoice = strings.TrimSpace(req.FirstChoice)
	req.SecondChoice = strings.TrimSpace(req.SecondChoice)

	if req.Token == "" {
		return req, invalid("token is required")
	}
	if req.FirstChoice == "" || req.SecondChoice == "" {
		return req, invalid("first_choice and second_choice are required")
	}
	if req.FirstChoice == req.SecondChoice {
		return req, invalid("first and second choice must be different candidates")
	}

	var err error
	if req.FirstReason, err = requireText("first_reason", req.FirstReason, maxReasonLen); err != nil {
		return req, err
	}
	if req.SecondReason, err = requireText("second_reason", req.SecondReason, maxReasonLen); err != nil {
		return req, err
	}
	return req, nil
}

func (b *Ballots) candidate(ctx context.Context, id string) (models.Candidate, error) {
	if !auth.IsHexID(id, sha256.Size) {
		return models.Candidate{}, invalid("unknown candidate %q", id)
	}
	c, err := b.records.candidate(ctx, id)
	if errors.Is(err, kvstore.ErrNotFound) {
		return models.Candidate{}, invalid("unknown candidate %q", id)
	}
	if err != nil {
		return models.Candidate{}, err
	}
	return c, nil
}

// ListCandidates returns everyone registered in classLabel, ordered by name.
// The caller's own entry is included.
func (b *Ballots) ListCandidates(ctx context.Context, classLabel string) ([]models.CandidateSummary, error) {
	class, err := requireText("class_label", classLabel, maxClassLen)
	if err != nil {
		return nil, err
	}

	all, err := b.records.candidates(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.CandidateSummary, 0)
	for _, c := range all {
		if c.ClassLabel == class {
			out = append(out, models.CandidateSummary{ID: c.ID, Name: c.FullName})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

// Tally recomputes the results from every stored vote.
func (b *Ballots) Tally(ctx context.Context) (models.Results, error) {
	votes, err := b.records.votes(ctx)
	if err != nil {
		return models.Results{}, err
	}
	candidates, err := b.records.candidates(ctx)
	if err != nil {
		return models.Results{}, err
	}
	return Tally(votes, candidates), nil
}
