// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tokens implements expiring, single-use tokens.

A token is a 128-bit random hex id stored under "<kind>:<id>" with its
payload and absolute expiry. The store does not judge expiry: Resolve
returns expired tokens so that callers can tell "expired" apart from
"never issued" and pick their own message.

	tok, err := store.Resolve(ctx, tokens.KindVoting, id)
	if errors.Is(err, tokens.ErrNotFound) {
		...
	}
	if tok.Expired(store.Now()) {
		_ = store.Consume(ctx, tokens.KindVoting, id)
		...
	}

There is no background sweep. Expired tokens are deleted when a caller
next touches them.
*/
package tokens
