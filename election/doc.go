// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements registration, ballot issuing, vote submission
and tallying for class representative elections.

# Components

  - Registrar: direct registration and the two-step registration link flow
  - Issuer: voting links for registered voters who have not voted
  - Ballots: vote submission, candidate lists, tallies and result snapshots

New wires all three from shared Deps:

	svc := election.New(election.Deps{
		Store:     store,
		Tokens:    tokens.New(store, nil),
		Hasher:    auth.NewHasher(salt),
		Notifier:  notify.Log{},
		PublicURL: "http://localhost:3001",
	}, election.Config{})

# Identity

Voters are keyed by the anonymized email (see auth.AnonymizeEmail). Every
voter is also a candidate in their own class under the same key, and that
key is the candidate id used in ballots. Votes carry no reference back to
the voter who cast them.

# Consistency

The store has no transactions. Multi-record operations are ordered so a
failure part-way leaves a state that a retry detects:

  - registration writes the voter, then the candidate (and removes the
    voter again if the candidate write fails), then consumes the token
  - submission reads the voter last, then writes the vote, flips has-voted
    and finally consumes the token

Two submissions for the same voter racing through the has-voted check at
the same moment can both succeed. Self-voting is allowed unless
Config.ForbidSelfVote is set.

# Scoring

A first choice earns 2 points and a second choice 1, summed per class.
Results are recomputed from all votes on every call.

# Errors

Failures are sentinel errors; KindOf maps them to Validation, NotFound,
Expired, Conflict or Internal.
*/
package election
