package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	kerrors "github.com/solobooks/solobooks/internal/errors"
)

const (
	// NonceSize is the GCM-standard 12-byte nonce length.
	NonceSize = 12

	// TagSize is the GCM authentication tag length appended to the ciphertext.
	TagSize = 16
)

// Encrypt seals plaintext with AES-256-GCM. The 16-byte tag is appended to
// the ciphertext, so callers treat the result as one opaque blob.
func Encrypt(key, nonce, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key, nonce)
	if err != nil {
		return nil, err
	}
	return gcm.Seal(nil, nonce, plaintext, nil), nil
}

// Decrypt opens a ciphertext-with-tag blob produced by Encrypt. On tag
// mismatch it returns ErrAuthenticationFailed and no plaintext bytes;
// wrong key, corruption, and tampering are indistinguishable here.
func Decrypt(key, nonce, ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM(key, nonce)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < TagSize {
		return nil, fmt.Errorf("%w: ciphertext shorter than authentication tag", kerrors.ErrContainerFormat)
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, kerrors.ErrAuthenticationFailed
	}
	return plaintext, nil
}

// NewNonce returns a fresh random nonce from the system CSPRNG. A nonce is
// never reused: every encryption also derives a brand-new key from a fresh
// salt, so key/nonce pairs are unique even across identical plaintexts.
func NewNonce() ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return nonce, nil
}

func newGCM(key, nonce []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes", kerrors.ErrInvalidKeyLength, KeySize, len(key))
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes", kerrors.ErrInvalidNonceLength, NonceSize, len(nonce))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AES: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}
	return gcm, nil
}
