// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"log/slog"
)

// Message is a single HTML email
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Notifier delivers messages. Callers treat failures as non-fatal.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// Log writes messages to the log instead of sending them.
// Used when no SMTP server is configured.
type Log struct{}

func (Log) Send(ctx context.Context, msg Message) error {
	slog.Info("email (not sent, no SMTP configured)",
		"to", msg.To,
		"subject", msg.Subject,
	)
	slog.Debug("email body", "to", msg.To, "html", msg.HTML)
	return nil
}
