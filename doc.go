// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the classrep API server.

classrep runs class representative elections. Students register by email,
receive single-use links, and rank two classmates with a reason for each.
The first choice earns 2 points and the second 1; results are tallied per
class.

# Starting the Server

With the default sqlite store:

	ADMIN_KEY_SALT=... DATABASE_URL=file:classrep.db go run .

Or with flags and a config file:

	go run . -c classrep.yaml -t postgres -d "postgres://..."

A .env file in the working directory is loaded first when present.

# Configuration

Required settings:

  - ADMIN_KEY_SALT (-admin-salt): Secret for the results admin key
  - DATABASE_URL (-d): for sqlite, postgres and pgx stores
  - ETCD_ENDPOINTS (-etcd): for the etcd store

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres, pgx, etcd or memory
  - IDENTITY_SALT: Pepper for the email hash
  - PUBLIC_URL: Link origin when a request has none
  - REGISTRATION_TTL, VOTING_TTL: Link lifetimes (1h, 30m)
  - FORBID_SELF_VOTE: Reject ballots naming the voter
  - SMTP_*: Mail delivery; links are logged when unset
  - S3_*: Snapshot archive bucket

# Architecture

  - handlers: HTTP request handlers (registration, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - election: Registration, ballot issuing, submission and tally
  - tokens: Expiring single-use tokens
  - kvstore: Key-value record store (sqlite, postgres, etcd, memory)
  - db: SQL drivers and goose migrations
  - notify: SMTP and log notifiers, email templates
  - archive: S3 snapshot uploads
  - metrics: Prometheus counters
  - models: Request/response and record types
  - auth: Ids, admin keys and email anonymization
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
