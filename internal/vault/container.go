package vault

import (
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/solobooks/solobooks/internal/errors"
)

// MinContainerSize is the smallest valid container: salt, nonce, and the
// authentication tag of an empty plaintext.
const MinContainerSize = SaltSize + NonceSize + TagSize

// Container is a parsed encrypted database file. Payload holds the
// ciphertext with the GCM tag appended, matching the cipher's combined
// convention.
type Container struct {
	Salt    []byte
	Nonce   []byte
	Payload []byte
}

// Seal encrypts plaintext under password with a fresh random salt and
// nonce. The fresh salt means a fresh derived key on every call, so two
// encryptions of the same plaintext never share key material.
func Seal(password, plaintext []byte) (*Container, error) {
	salt, err := NewSalt()
	if err != nil {
		return nil, err
	}
	nonce, err := NewNonce()
	if err != nil {
		return nil, err
	}
	key, err := DeriveKey(password, salt)
	if err != nil {
		return nil, err
	}
	payload, err := Encrypt(key, nonce, plaintext)
	if err != nil {
		return nil, err
	}
	return &Container{Salt: salt, Nonce: nonce, Payload: payload}, nil
}

// Open derives the key for this container's salt and decrypts the payload.
// Returns ErrAuthenticationFailed if the password is wrong or the payload
// has been modified.
func (c *Container) Open(password []byte) ([]byte, error) {
	key, err := DeriveKey(password, c.Salt)
	if err != nil {
		return nil, err
	}
	return Decrypt(key, c.Nonce, c.Payload)
}

// Encode serializes the container into the frozen on-disk layout:
// salt || nonce || ciphertext+tag.
func (c *Container) Encode() []byte {
	out := make([]byte, 0, len(c.Salt)+len(c.Nonce)+len(c.Payload))
	out = append(out, c.Salt...)
	out = append(out, c.Nonce...)
	out = append(out, c.Payload...)
	return out
}

// Decode parses raw container bytes. Any input shorter than
// MinContainerSize is rejected with ErrContainerFormat; nothing below the
// minimum can carry a valid tag.
func Decode(data []byte) (*Container, error) {
	if len(data) < MinContainerSize {
		return nil, fmt.Errorf("%w: %d bytes, minimum is %d", kerrors.ErrContainerFormat, len(data), MinContainerSize)
	}
	return &Container{
		Salt:    data[:SaltSize],
		Nonce:   data[SaltSize : SaltSize+NonceSize],
		Payload: data[SaltSize+NonceSize:],
	}, nil
}

// ReadContainer reads and parses the container at path.
func ReadContainer(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrContainerNotFound, path)
		}
		return nil, fmt.Errorf("failed to read container at %s: %w", path, err)
	}
	c, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// WriteContainer writes the container to path with owner-only permissions.
// The write is atomic with respect to crashes: the bytes go to a temporary
// file in the same directory, which is synced and then renamed over the
// destination. A process dying mid-write can never leave a half-written
// container where the next start will find it.
func WriteContainer(path string, c *Container) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary container in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if err := tmp.Chmod(0600); err != nil {
		cleanup()
		return fmt.Errorf("failed to restrict container permissions: %w", err)
	}
	if _, err := tmp.Write(c.Encode()); err != nil {
		cleanup()
		return fmt.Errorf("failed to write container: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync container: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close container: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace container at %s: %w", path, err)
	}
	return nil
}
