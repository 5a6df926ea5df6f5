// Package crypto seals small secrets at rest, such as the persisted session
// token, with AES-256-GCM.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// envelopePrefix versions the sealed format: "v1." + base64url(nonce || ciphertext).
const envelopePrefix = "v1."

var (
	ErrInvalidKey = errors.New("encryption key must be 32 bytes")
	ErrMalformed  = errors.New("sealed value is malformed")
	ErrOpen       = errors.New("sealed value does not open with this key")
)

// Sealer binds every value to a purpose label passed as associated data, so
// a value sealed for one purpose does not open for another.
type Sealer struct {
	aead    cipher.AEAD
	purpose []byte
}

func NewSealer(key []byte, purpose string) (*Sealer, error) {
	if len(key) != 32 {
		return nil, ErrInvalidKey
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	return &Sealer{aead: aead, purpose: []byte(purpose)}, nil
}

// SealerFromHex builds a Sealer from a 64 char hex key.
func SealerFromHex(hexKey, purpose string) (*Sealer, error) {
	key, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil {
		return nil, fmt.Errorf("invalid hex key: %w", err)
	}
	return NewSealer(key, purpose)
}

// IsSealed reports whether s carries the sealed envelope.
func IsSealed(s string) bool {
	return strings.HasPrefix(s, envelopePrefix)
}

func (s *Sealer) Seal(plaintext string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	out := s.aead.Seal(nonce, nonce, []byte(plaintext), s.purpose)
	return envelopePrefix + base64.RawURLEncoding.EncodeToString(out), nil
}

func (s *Sealer) Open(sealed string) (string, error) {
	if !IsSealed(sealed) {
		return "", ErrMalformed
	}
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(sealed, envelopePrefix))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	n := s.aead.NonceSize()
	if len(data) < n+s.aead.Overhead() {
		return "", ErrMalformed
	}
	plain, err := s.aead.Open(nil, data[:n], data[n:], s.purpose)
	if err != nil {
		return "", ErrOpen
	}
	return string(plain), nil
}
