// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/danielhkuo/classrep/auth"
	"github.com/danielhkuo/classrep/kvstore"
	"github.com/danielhkuo/classrep/metrics"
	"github.com/danielhkuo/classrep/notify"
	"github.com/danielhkuo/classrep/tokens"
)

// Issuer hands out voting links to registered voters who have not voted.
type Issuer struct {
	records   records
	tokens    *tokens.Store
	hasher    auth.Hasher
	notifier  notify.Notifier
	publicURL string
	ttl       time.Duration
}

func NewIssuer(d Deps, ttl time.Duration) *Issuer {
	return &Issuer{
		records:   records{kv: d.Store},
		tokens:    d.Tokens,
		hasher:    d.Hasher,
		notifier:  d.Notifier,
		publicURL: d.PublicURL,
		ttl:       ttl,
	}
}

// Ballot is what the voting page needs to render
type Ballot struct {
	ClassLabel  string
	VoterName   string
	CandidateID string // the voter's own candidate id
	ExpiresAt   time.Time
}

// RequestVotingLink issues a voting token for a registered voter who has
// not voted yet.
func (i *Issuer) RequestVotingLink(ctx context.Context, email, origin string) (link Link, err error) {
	defer func() { observe(err) }()

	email, err = normalizeEmail(email)
	if err != nil {
		return Link{}, err
	}

	key := i.hasher.Anonymize(email)
	voter, err := i.records.voter(ctx, key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return Link{}, ErrVoterNotFound
	}
	if err != nil {
		return Link{}, err
	}
	if voter.HasVoted {
		return Link{}, ErrAlreadyVoted
	}

	tok, err := i.tokens.Issue(ctx, tokens.KindVoting, key, i.ttl)
	if err != nil {
		return Link{}, err
	}

	url := buildLink(origin, i.publicURL, "token", tok.ID)
	msg, renderErr := notify.VotingLink(email, voter.FullName, voter.ClassLabel, url, tok.CreatedAt, tok.ExpiresAt)
	sent := send(ctx, i.notifier, msg, renderErr)

	metrics.LinksIssued.WithLabelValues(metrics.LinkVoting).Inc()
	slog.Info("voting link issued", "class", voter.ClassLabel, "email_sent", sent)

	return Link{
		URL:       url,
		Token:     tok.ID,
		ExpiresAt: tok.ExpiresAt,
		EmailSent: sent,
	}, nil
}

// VerifyVotingToken checks a voting token and re-checks the voter. It
// narrows the double-vote window; Submit remains the final authority.
func (i *Issuer) VerifyVotingToken(ctx context.Context, tokenID string) (ballot Ballot, err error) {
	defer func() { observe(err) }()

	tok, err := resolveLive(ctx, i.tokens, tokens.KindVoting, tokenID)
	if err != nil {
		return Ballot{}, err
	}

	voter, err := i.records.voter(ctx, tok.Payload)
	if errors.Is(err, kvstore.ErrNotFound) {
		return Ballot{}, ErrVoterNotFound
	}
	if err != nil {
		return Ballot{}, err
	}
	if voter.HasVoted {
		return Ballot{}, ErrAlreadyVoted
	}

	return Ballot{
		ClassLabel:  voter.ClassLabel,
		VoterName:   voter.FullName,
		CandidateID: tok.Payload,
		ExpiresAt:   tok.ExpiresAt,
	}, nil
}
