// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Precedence

Each setting is taken from the first source that has it:

	CLI flag → environment variable → YAML file → default

The YAML file is named by -c or CONFIG_FILE. Durations are written as Go
duration strings ("45m", "2h").

# CLI Flags

	-c                 YAML config file
	-p                 Server port
	-t                 Store type
	-d                 Database URL
	-etcd              Comma-separated etcd endpoints
	-public-url        Fallback link origin
	-registration-ttl  Registration link lifetime
	-voting-ttl        Voting link lifetime
	-forbid-self-vote  Reject self votes
	-admin-salt        Admin key salt
	-identity-salt     Email hashing salt
	-log-level         debug, info, warn or error
	-print-admin-key   Print the results admin key and exit

# Environment Variables

	PORT, DATABASE_TYPE, DATABASE_URL, ETCD_ENDPOINTS, ADMIN_KEY_SALT,
	IDENTITY_SALT, PUBLIC_URL, REGISTRATION_TTL, VOTING_TTL,
	FORBID_SELF_VOTE, LOG_LEVEL, CONFIG_FILE,
	SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS, SMTP_FROM,
	S3_BUCKET, S3_REGION, S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY

SMTP and S3 settings have no flags; keep credentials out of argv.

# Validation

ParseFlags returns an error when:

  - ADMIN_KEY_SALT is missing
  - DATABASE_URL is missing for sqlite, postgres or pgx
  - ETCD_ENDPOINTS is missing for etcd
  - the store type, port, TTLs or log level are invalid
  - SMTP_HOST is set without SMTP_FROM
*/
package cliparse
