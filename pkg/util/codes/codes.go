// Package codes generates random opaque identifiers such as bearer tokens.
package codes

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

var ErrInvalidLength = errors.New("invalid code length")

// TokenByteLength is the entropy of a bearer token (64 hex chars).
const TokenByteLength = 32

// GenerateBearerToken returns a fresh opaque bearer token.
func GenerateBearerToken() (string, error) {
	return GenerateSecureToken(TokenByteLength)
}

// GenerateSecureToken returns byteLength random bytes as hex.
func GenerateSecureToken(byteLength int) (string, error) {
	b, err := random(byteLength)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateURLSafeToken returns byteLength random bytes as unpadded
// URL-safe base64.
func GenerateURLSafeToken(byteLength int) (string, error) {
	b, err := random(byteLength)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func random(n int) ([]byte, error) {
	if n < 1 {
		return nil, ErrInvalidLength
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}
