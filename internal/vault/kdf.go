package vault

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of the random salt stored in every container.
	SaltSize = 32

	// KeySize is the derived key length, sized for AES-256.
	KeySize = 32

	// KDFIterations is the PBKDF2 iteration count. Fixed by the container
	// format contract; changing it breaks decryption of existing files.
	KDFIterations = 100000
)

// DeriveKey derives a 32-byte AES key from a password and salt using
// PBKDF2-HMAC-SHA-256. Deterministic: the same password and salt always
// produce the same key. An empty password is accepted; password-strength
// policy belongs to the front-end, not to this primitive.
func DeriveKey(password, salt []byte) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("invalid salt length: expected %d bytes, got %d bytes", SaltSize, len(salt))
	}
	return pbkdf2.Key(password, salt, KDFIterations, KeySize, sha256.New), nil
}

// NewSalt returns a fresh random salt from the system CSPRNG.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}
