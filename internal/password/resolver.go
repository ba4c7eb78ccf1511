package password

import (
	"fmt"
	"os"
	"sync"

	kerrors "github.com/solobooks/solobooks/internal/errors"
)

// EnvVar is the environment variable carrying an override password for
// non-interactive use. It outranks the credential store but not an
// explicitly set in-memory password.
const EnvVar = "SOLOBOOKS_DB_PASSWORD"

// PromptFunc asks the user for the password. Supplied by the front-end;
// the resolver only defines the hook.
type PromptFunc func() ([]byte, error)

// CredentialStore abstracts the platform keychain. Get returns (nil, nil)
// when no entry exists, which the resolver treats as "step yielded
// nothing" rather than an error.
type CredentialStore interface {
	Get() ([]byte, error)
	Set(password []byte) error
	Delete() error
}

// Resolver decides which password to use this session and caches the
// result in memory until Clear.
type Resolver struct {
	mu     sync.Mutex
	cached []byte
	have   bool

	// Prompt is the interactive fallback. Nil when the front-end cannot
	// prompt (no TTY); resolution then fails with ErrPasswordUnavailable.
	Prompt PromptFunc

	store CredentialStore
}

// NewResolver creates a resolver backed by the given credential store.
// A nil store skips the keychain step entirely.
func NewResolver(store CredentialStore) *Resolver {
	return &Resolver{store: store}
}

// Set overwrites the session cache immediately. Used right after the user
// types a password, before the first decrypt.
func (r *Resolver) Set(password []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.zeroLocked()
	r.cached = append([]byte(nil), password...)
	r.have = true
}

// Get resolves the password, walking the resolution chain on the first
// call and returning the cached value afterwards. Returns
// ErrPasswordUnavailable when every step yields nothing.
func (r *Resolver) Get() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.have {
		return append([]byte(nil), r.cached...), nil
	}

	// Environment override. A set-but-empty variable is a deliberate empty
	// password, not an absent one.
	if value, ok := os.LookupEnv(EnvVar); ok {
		r.cached = []byte(value)
		r.have = true
		return append([]byte(nil), r.cached...), nil
	}

	if r.store != nil {
		stored, err := r.store.Get()
		if err != nil {
			return nil, fmt.Errorf("failed to read credential store: %w", err)
		}
		if stored != nil {
			r.cached = stored
			r.have = true
			return append([]byte(nil), r.cached...), nil
		}
	}

	if r.Prompt != nil {
		typed, err := r.Prompt()
		if err != nil {
			return nil, fmt.Errorf("password prompt failed: %w", err)
		}
		r.cached = typed
		r.have = true
		return append([]byte(nil), r.cached...), nil
	}

	return nil, kerrors.ErrPasswordUnavailable
}

// Clear zeroes and drops the cached password. Called on every database
// close path, including error paths.
func (r *Resolver) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.zeroLocked()
}

// Save writes the cached password to the credential store so either
// front-end can unlock the database without prompting.
func (r *Resolver) Save() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.have {
		return kerrors.ErrPasswordUnavailable
	}
	if r.store == nil {
		return kerrors.ErrKeychainUnavailable
	}
	if err := r.store.Set(r.cached); err != nil {
		return fmt.Errorf("failed to write credential store: %w", err)
	}
	return nil
}

// Forget removes the stored credential, if any, and clears the session
// cache.
func (r *Resolver) Forget() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.zeroLocked()
	if r.store == nil {
		return nil
	}
	if err := r.store.Delete(); err != nil {
		return fmt.Errorf("failed to remove credential store entry: %w", err)
	}
	return nil
}

func (r *Resolver) zeroLocked() {
	for i := range r.cached {
		r.cached[i] = 0
	}
	r.cached = nil
	r.have = false
}
