// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "errors"

var (
	ErrValidation                 = errors.New("validation failed")
	ErrAlreadyRegistered          = errors.New("email already registered")
	ErrTokenNotFound              = errors.New("invalid or expired token")
	ErrTokenExpired               = errors.New("token has expired")
	ErrVoterNotFound              = errors.New("email not found in voter registry")
	ErrAlreadyVoted               = errors.New("you have already voted")
	ErrInvalidToken               = errors.New("invalid voting token")
	ErrInvalidVoterOrAlreadyVoted = errors.New("invalid voter or already voted")
	ErrSnapshotNotFound           = errors.New("snapshot not found")
)

// Kind is the coarse class of an error, used to pick a status code
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindExpired
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindExpired:
		return "expired"
	case KindConflict:
		return "conflict"
	}
	return "internal"
}

// KindOf classifies err. Anything not recognised is internal.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrTokenExpired):
		return KindExpired
	case errors.Is(err, ErrTokenNotFound),
		errors.Is(err, ErrVoterNotFound),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrSnapshotNotFound):
		return KindNotFound
	case errors.Is(err, ErrAlreadyRegistered),
		errors.Is(err, ErrAlreadyVoted),
		errors.Is(err, ErrInvalidVoterOrAlreadyVoted):
		return KindConflict
	}
	return KindInternal
}

// reason returns the metrics label for a rejected operation
func reason(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, ErrTokenNotFound):
		return "token_not_found"
	case errors.Is(err, ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, ErrVoterNotFound):
		return "voter_not_found"
	case errors.Is(err, ErrAlreadyVoted):
		return "already_voted"
	case errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, ErrInvalidVoterOrAlreadyVoted):
		return "invalid_voter_or_already_voted"
	case errors.Is(err, ErrSnapshotNotFound):
		return "snapshot_not_found"
	}
	return "internal"
}
