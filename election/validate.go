// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLen   = 100
	maxClassLen  = 50
	maxReasonLen = 64
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// normalizeEmail trims and syntax-checks an address. Case is preserved;
// the hasher lower-cases.
func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", invalid("email is required")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalid("invalid email address")
	}
	return email, nil
}

func requireText(field, raw string, max int) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", invalid("%s is required", field)
	}
	if utf8.RuneCountInString(s) > max {
		return "", invalid("%s must be at most %d characters", field, max)
	}
	return s, nil
}

func validateProfile(fullName, classLabel string) (string, string, error) {
	name, err := requireText("full_name", fullName, maxNameLen)
	if err != nil {
		return "", "", err
	}
	class, err := requireText("class_label", classLabel, maxClassLen)
	if err != nil {
		return "", "", err
	}
	return name, class, nil
}
