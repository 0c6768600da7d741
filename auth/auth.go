// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrMissingPrincipal = errors.New("missing principal")
	ErrInvalidSignature = errors.New("invalid principal signature")
)

// SignPrincipal creates an HMAC-based signature for a caller principal.
// This is deterministic and verifiable without storing anything.
func SignPrincipal(principal, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(principal))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner headers
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidatePrincipal checks that signature was issued for principal
func ValidatePrincipal(principal, signature, salt string) error {
	if principal == "" {
		return ErrMissingPrincipal
	}
	expected := SignPrincipal(principal, salt)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return ErrInvalidSignature
	}
	return nil
}
