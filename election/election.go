// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/classrep/auth"
	"github.com/danielhkuo/classrep/kvstore"
	"github.com/danielhkuo/classrep/metrics"
	"github.com/danielhkuo/classrep/notify"
	"github.com/danielhkuo/classrep/tokens"
)

// Default token lifetimes
const (
	DefaultRegistrationTTL = time.Hour
	DefaultVotingTTL       = 30 * time.Minute
)

// Deps are the collaborators shared by every component.
type Deps struct {
	Store    kvstore.Store
	Tokens   *tokens.Store
	Hasher   auth.Hasher
	Notifier notify.Notifier

	// PublicURL is the link origin used when the request carries none
	PublicURL string
}

type Config struct {
	RegistrationTTL time.Duration
	VotingTTL       time.Duration
	ForbidSelfVote  bool
	Archiver        Archiver // optional
}

// Service groups the components behind the HTTP API.
type Service struct {
	Registrar *Registrar
	Issuer    *Issuer
	Ballots   *Ballots
}

func New(d Deps, cfg Config) *Service {
	if cfg.RegistrationTTL <= 0 {
		cfg.RegistrationTTL = DefaultRegistrationTTL
	}
	if cfg.VotingTTL <= 0 {
		cfg.VotingTTL = DefaultVotingTTL
	}
	if d.Notifier == nil {
		d.Notifier = notify.Log{}
	}

	return &Service{
		Registrar: NewRegistrar(d, cfg.RegistrationTTL),
		Issuer:    NewIssuer(d, cfg.VotingTTL),
		Ballots:   NewBallots(d, cfg.ForbidSelfVote, cfg.Archiver),
	}
}

// Link is a freshly issued token and the URL that carries it.
// EmailSent is informational; the link is valid either way.
type Link struct {
	URL       string
	Token     string
	ExpiresAt time.Time
	EmailSent bool
}

func buildLink(origin, fallback, param, token string) string {
	if origin == "" {
		origin = fallback
	}
	return strings.TrimRight(origin, "/") + "?" + param + "=" + token
}

// resolveLive resolves a token for the verification paths, deleting it
// when it turns out to be expired.
func resolveLive(ctx context.Context, ts *tokens.Store, kind tokens.Kind, id string) (tokens.Token, error) {
	tok, err := ts.Resolve(ctx, kind, id)
	if errors.Is(err, tokens.ErrNotFound) {
		return tokens.Token{}, ErrTokenNotFound
	}
	if err != nil {
		return tokens.Token{}, err
	}

	if tok.Expired(ts.Now()) {
		if err := ts.Consume(ctx, kind, id); err != nil {
			slog.Warn("failed to delete expired token", "kind", kind, "error", err)
		}
		return tokens.Token{}, ErrTokenExpired
	}
	return tok, nil
}

// send delivers msg and reports whether it went out. Failures are logged
// and counted, never returned.
func send(ctx context.Context, n notify.Notifier, msg notify.Message, renderErr error) bool {
	if renderErr != nil {
		slog.Error("failed to render email", "error", renderErr)
		metrics.Notifications.WithLabelValues(metrics.ResultFailed).Inc()
		return false
	}
	if err := n.Send(ctx, msg); err != nil {
		slog.Warn("failed to send email", "subject", msg.Subject, "error", err)
		metrics.Notifications.WithLabelValues(metrics.ResultFailed).Inc()
		return false
	}
	metrics.Notifications.WithLabelValues(metrics.ResultSent).Inc()
	return true
}

// observe counts a failed operation
func observe(err error) {
	if err != nil {
		metrics.Rejections.WithLabelValues(reason(err)).Inc()
	}
}
