// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identity hashing, ID generation and admin keys.

# Voter Keys

Email addresses are never stored next to voting state. They are turned into
anonymized voter keys first:

	key := auth.AnonymizeEmail("Alice@School.edu", "")

The address is lower-cased before hashing, so "Alice@School.edu" and
"alice@school.edu" map to the same key. Without a salt the key is the
hex SHA-256 digest of the address. With a salt (IDENTITY_SALT) HMAC-SHA256
is used instead, so keys cannot be confirmed by hashing a guessed address.

Services hold a Hasher so the salt travels with them:

	h := auth.NewHasher(cfg.IdentitySalt)
	key := h.Anonymize(email)

# Token IDs

Random hex IDs back registration and voting tokens:

	id, err := auth.GenerateID(16)  // 128 bits, 32 hex characters

IsHexID rejects malformed IDs before they reach the store.

# Admin Keys

Admin keys use HMAC-SHA256 over a scope string:

	adminKey := auth.GenerateAdminKey(auth.AdminScopeResults, salt)
	err := auth.ValidateAdminKey(auth.AdminScopeResults, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
it can be validated without being stored anywhere.
*/
package auth
