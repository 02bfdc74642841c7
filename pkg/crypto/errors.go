package crypto

import "errors"

// Crypto errors.
var (
	// ErrDecrypt indicates the ciphertext was not produced by this cipher
	// and key. It is surfaced to the caller rather than degraded to a
	// garbage plaintext string.
	ErrDecrypt = errors.New("ciphertext cannot be decrypted")

	// ErrMalformed indicates the ciphertext wire form is invalid
	// (bad base64 or truncated nonce).
	ErrMalformed = errors.New("malformed ciphertext")
)
