// Package crypto provides symmetric encryption for journal text at the
// storage boundary. Entries are encrypted with AES-256-GCM under a key
// derived once from the configured passphrase and salt; callers above the
// repository layer only ever see plaintext.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const nonceSize = 12

// System encrypts and decrypts text fields marked encrypted-at-rest.
type System interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

type codec struct {
	aead cipher.AEAD
}

// New derives the AES key from the config and returns a crypto System.
func New(cfg *Config) (System, error) {
	key := argon2.IDKey([]byte(cfg.Passphrase), []byte(cfg.Salt), 1, 64*1024, 4, 32)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &codec{aead: aead}, nil
}

// Encrypt seals plaintext with a fresh random nonce and returns
// base64(nonce || ciphertext).
func (c *codec) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Input that is not valid base64 or is too short
// returns ErrMalformed; input that fails authentication returns ErrDecrypt.
func (c *codec) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if len(raw) < nonceSize {
		return "", ErrMalformed
	}

	plaintext, err := c.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", ErrDecrypt
	}

	return string(plaintext), nil
}
