// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/classrep/auth"
	"github.com/danielhkuo/classrep/metrics"
	"github.com/danielhkuo/classrep/models"
	"github.com/danielhkuo/classrep/notify"
	"github.com/danielhkuo/classrep/tokens"
)

// Registrar turns an email into a voter and candidate pair, either
// directly or through a registration link.
type Registrar struct {
	records   records
	tokens    *tokens.Store
	hasher    auth.Hasher
	notifier  notify.Notifier
	publicURL string
	ttl       time.Duration
}

func NewRegistrar(d Deps, ttl time.Duration) *Registrar {
	return &Registrar{
		records:   records{kv: d.Store},
		tokens:    d.Tokens,
		hasher:    d.Hasher,
		notifier:  d.Notifier,
		publicURL: d.PublicURL,
		ttl:       ttl,
	}
}

// RegistrationTicket is what a valid registration token reveals
type RegistrationTicket struct {
	Email     string
	ExpiresAt time.Time
}

// Register creates the voter and candidate records for email and returns
// the candidate id.
func (r *Registrar) Register(ctx context.Context, email, fullName, classLabel string) (id string, err error) {
	defer func() { observe(err) }()

	email, err = normalizeEmail(email)
	if err != nil {
		return "", err
	}
	name, class, err := validateProfile(fullName, classLabel)
	if err != nil {
		return "", err
	}

	key := r.hasher.Anonymize(email)
	exists, err := r.records.voterExists(ctx, key)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrAlreadyRegistered
	}

	if err := r.create(ctx, key, name, class); err != nil {
		return "", err
	}

	metrics.Registrations.WithLabelValues(metrics.MethodDirect).Inc()
	slog.Info("voter registered", "method", metrics.MethodDirect, "class", class)
	return key, nil
}

// RequestRegistrationLink issues a registration token for email and tries
// to mail the link. origin may be empty.
func (r *Registrar) RequestRegistrationLink(ctx context.Context, email, origin string) (link Link, err error) {
	defer func() { observe(err) }()

	email, err = normalizeEmail(email)
	if err != nil {
		return Link{}, err
	}

	exists, err := r.records.voterExists(ctx, r.hasher.Anonymize(email))
	if err != nil {
		return Link{}, err
	}
	if exists {
		return Link{}, ErrAlreadyRegistered
	}

	// The email stays raw until registration completes
	tok, err := r.tokens.Issue(ctx, tokens.KindRegistration, email, r.ttl)
	if err != nil {
		return Link{}, err
	}

	url := buildLink(origin, r.publicURL, "regToken", tok.ID)
	msg, renderErr := notify.RegistrationLink(email, url, tok.CreatedAt, tok.ExpiresAt)
	sent := send(ctx, r.notifier, msg, renderErr)

	metrics.LinksIssued.WithLabelValues(metrics.LinkRegistration).Inc()
	slog.Info("registration link issued", "email_sent", sent, "expires_at", tok.ExpiresAt)

	return Link{
		URL:       url,
		Token:     tok.ID,
		ExpiresAt: tok.ExpiresAt,
		EmailSent: sent,
	}, nil
}

// VerifyRegistrationToken returns the email a live token was issued for.
// An expired token is deleted, so asking again yields ErrTokenNotFound.
func (r *Registrar) VerifyRegistrationToken(ctx context.Context, tokenID string) (ticket RegistrationTicket, err error) {
	defer func() { observe(err) }()

	tok, err := resolveLive(ctx, r.tokens, tokens.KindRegistration, tokenID)
	if err != nil {
		return RegistrationTicket{}, err
	}
	return RegistrationTicket{Email: tok.Payload, ExpiresAt: tok.ExpiresAt}, nil
}

// CompleteRegistration finishes a link-based registration. The token is
// consumed only after both records are written.
func (r *Registrar) CompleteRegistration(ctx context.Context, tokenID, fullName, classLabel string) (id string, err error) {
	defer func() { observe(err) }()

	name, class, err := validateProfile(fullName, classLabel)
	if err != nil {
		return "", err
	}

	tok, err := resolveLive(ctx, r.tokens, tokens.KindRegistration, tokenID)
	if err != nil {
		return "", err
	}

	// The same email may have registered directly since the link went out
	key := r.hasher.Anonymize(tok.Payload)
	exists, err := r.records.voterExists(ctx, key)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrAlreadyRegistered
	}

	if err := r.create(ctx, key, name, class); err != nil {
		return "", err
	}

	if err := r.tokens.Consume(ctx, tokens.KindRegistration, tokenID); err != nil {
		slog.Warn("registration completed but token not consumed", "error", err)
	}

	metrics.Registrations.WithLabelValues(metrics.MethodLink).Inc()
	slog.Info("voter registered", "method", metrics.MethodLink, "class", class)
	return key, nil
}

// create writes the voter then the candidate. If the candidate write
// fails the voter is removed again so the registration can be retried.
func (r *Registrar) create(ctx context.Context, key, name, class string) error {
	now := r.tokens.Now().UTC()

	voter := models.Voter{
		FullName:     name,
		ClassLabel:   class,
		RegisteredAt: now,
	}
	if err := r.records.putVoter(ctx, key, voter); err != nil {
		return fmt.Errorf("failed to store voter: %w", err)
	}

	candidate := models.Candidate{
		ID:           key,
		FullName:     name,
		ClassLabel:   class,
		RegisteredAt: now,
	}
	if err := r.records.putCandidate(ctx, candidate); err != nil {
		if derr := r.records.kv.Delete(context.WithoutCancel(ctx), prefixVoter+key); derr != nil {
			slog.Error("voter stored without candidate", "error", derr)
		}
		return fmt.Errorf("failed to store candidate: %w", err)
	}

	return nil
}
