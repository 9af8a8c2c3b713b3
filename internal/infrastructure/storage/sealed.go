package storage

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/markaai/booking-gateway/internal/core/ports"
)

// Sealed decorates a ports.Storage so that values are encrypted at rest with
// ChaCha20-Poly1305. The key under which a value is stored is bound into the
// AEAD as associated data, so a value copied to another key fails to open.
type Sealed struct {
	inner ports.Storage
	aead  cipher.AEAD
}

// NewSealed wraps inner with encryption. hexKey is a 32-byte key in hex
// (64 characters), typically from SESSION_SEAL_KEY.
func NewSealed(inner ports.Storage, hexKey string) (*Sealed, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("seal key is not valid hex: %w", err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("seal key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("init aead: %w", err)
	}
	return &Sealed{inner: inner, aead: aead}, nil
}

func (s *Sealed) Get(ctx context.Context, key string) (string, bool, error) {
	sealed, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}

	raw, err := base64.RawStdEncoding.DecodeString(sealed)
	if err != nil {
		return "", false, fmt.Errorf("decode sealed value for %s: %w", key, err)
	}
	if len(raw) < chacha20poly1305.NonceSize {
		return "", false, fmt.Errorf("sealed value for %s too short", key)
	}

	nonce, ciphertext := raw[:chacha20poly1305.NonceSize], raw[chacha20poly1305.NonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, []byte(key))
	if err != nil {
		return "", false, fmt.Errorf("open sealed value for %s: %w", key, err)
	}
	return string(plaintext), true, nil
}

func (s *Sealed) Set(ctx context.Context, key, value string) error {
	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}

	sealed := s.aead.Seal(nonce, nonce, []byte(value), []byte(key))
	return s.inner.Set(ctx, key, base64.RawStdEncoding.EncodeToString(sealed))
}

func (s *Sealed) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, key)
}
