package password

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"

	kerrors "github.com/solobooks/solobooks/internal/errors"
)

// Credential store identity, shared by both front-ends so either can
// unlock a password the other saved. Versioned: a future container format
// bump rotates the service name, not the layout of existing entries.
const (
	keyringService = "solobooks.database.v1"
	keyringAccount = "default"
)

// Keychain is the platform credential store backed by the OS keychain
// (macOS Keychain, Windows Credential Manager, Secret Service on Linux).
type Keychain struct {
	ring keyring.Keyring
}

// OpenKeychain opens the platform credential store. Returns
// ErrKeychainUnavailable when no backend exists on this system, which the
// caller treats as "skip the keychain step", not as a fatal error.
func OpenKeychain() (*Keychain, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName:              keyringService,
		KeychainTrustApplication: true,
		LibSecretCollectionName:  "login",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrKeychainUnavailable, err)
	}
	return &Keychain{ring: ring}, nil
}

// Get returns the stored password, or (nil, nil) when no entry exists.
func (k *Keychain) Get() ([]byte, error) {
	item, err := k.ring.Get(keyringAccount)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return item.Data, nil
}

// Set stores the password under the shared service/account identity.
func (k *Keychain) Set(password []byte) error {
	return k.ring.Set(keyring.Item{
		Key:   keyringAccount,
		Data:  password,
		Label: "SoloBooks database password",
	})
}

// Delete removes the stored password. Missing entries are not an error.
func (k *Keychain) Delete() error {
	err := k.ring.Remove(keyringAccount)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}
