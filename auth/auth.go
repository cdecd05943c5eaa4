// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// AdminScopeResults is the scope string admin keys are derived for
const AdminScopeResults = "results"

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// IsHexID reports whether s looks like an ID produced by GenerateID(byteLen)
func IsHexID(s string, byteLen int) bool {
	if len(s) != byteLen*2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}

// GenerateAdminKey creates an HMAC-based admin key for a scope
// This is deterministic and verifiable
func GenerateAdminKey(scope, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(scope))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the scope
func ValidateAdminKey(scope, adminKey, salt string) error {
	expected := GenerateAdminKey(scope, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// AnonymizeEmail turns an email address into the anonymized voter key.
// The address is trimmed and lower-cased first, so the result is
// case-insensitive. With an empty salt the key is the hex SHA-256 digest;
// otherwise it is hex HMAC-SHA256 keyed by the salt.
func AnonymizeEmail(email, salt string) string {
	normalized := []byte(strings.ToLower(strings.TrimSpace(email)))
	if salt == "" {
		sum := sha256.Sum256(normalized)
		return hex.EncodeToString(sum[:])
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write(normalized)
	return hex.EncodeToString(h.Sum(nil))
}

// Hasher binds a salt to AnonymizeEmail so callers can pass it around as a
// dependency.
type Hasher struct {
	salt string
}

func NewHasher(salt string) Hasher {
	return Hasher{salt: salt}
}

// Anonymize returns the voter key for email
func (h Hasher) Anonymize(email string) string {
	return AnonymizeEmail(email, h.salt)
}
