// Package cryptox provides the at-rest sealing used for locally persisted
// credentials: argon2id key derivation from the per-install secret, and
// AES-GCM encryption of the stored values.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const nonceSize = 12

var ErrCiphertextTooShort = errors.New("ciphertext too short")

// DeriveKey stretches the install secret into a 256-bit AES key.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}

// Seal encrypts plaintext with AES-GCM under key and returns the nonce
// prepended to the ciphertext, so the result is a single storable blob.
// A fresh random nonce is generated per call.
func Seal(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}

	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a blob produced by Seal. It fails on truncated input,
// a wrong key, or any tampering with the ciphertext.
func Open(blob []byte, key []byte) ([]byte, error) {
	if len(blob) < nonceSize {
		return nil, ErrCiphertextTooShort
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}

	return aesgcm.Open(nil, blob[:nonceSize], blob[nonceSize:], nil)
}
