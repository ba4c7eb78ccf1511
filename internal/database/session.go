package database

import (
	"errors"
	"fmt"
	"os"

	"github.com/solobooks/solobooks/internal/configs"
	kerrors "github.com/solobooks/solobooks/internal/errors"
	"github.com/solobooks/solobooks/internal/password"
	"github.com/solobooks/solobooks/internal/vault"
)

// State is the lifecycle position of a Session.
type State int

const (
	StateClosed State = iota
	StateOpening
	StateOpen
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session owns one open/close cycle of the data file.
type Session struct {
	// EncryptionEnabled is decided at construction: the configuration flag
	// OR an existing container at the at-rest path. The content heuristic
	// is never consulted here.
	EncryptionEnabled bool

	// WorkingPath is the plaintext file the data layer opens. When
	// encryption is disabled it is also the at-rest file.
	WorkingPath string

	// ContainerPath is the at-rest encrypted container beside the working
	// file.
	ContainerPath string

	state    State
	resolver *password.Resolver
	store    Store
}

// NewSession builds a session for the data file at dataPath. encrypted is
// the configuration flag; an existing container forces encryption on
// regardless, so a user who deletes the config file cannot silently start
// writing plaintext beside their encrypted data.
func NewSession(dataPath string, encrypted bool, resolver *password.Resolver, store Store) *Session {
	containerPath := configs.ContainerPath(dataPath)
	if !encrypted {
		if _, err := os.Stat(containerPath); err == nil {
			encrypted = true
		}
	}
	return &Session{
		EncryptionEnabled: encrypted,
		WorkingPath:       dataPath,
		ContainerPath:     containerPath,
		state:             StateClosed,
		resolver:          resolver,
		store:             store,
	}
}

// State reports the session's lifecycle position.
func (s *Session) State() State {
	return s.state
}

// Open brings the data layer up. For an encrypted database this resolves
// the password and decrypts the container into the working file; on
// authentication failure it aborts with ErrWrongPasswordOrCorrupt without
// creating or modifying any file. When no container exists yet
// (first-time encryption) the working path and the future at-rest path
// start from the same plaintext file and no decrypt occurs; the following
// Close produces the first container.
func (s *Session) Open() error {
	if s.state != StateClosed {
		return fmt.Errorf("%w: state is %s", kerrors.ErrSessionAlreadyOpen, s.state)
	}
	s.state = StateOpening

	if !s.EncryptionEnabled {
		if err := s.store.Open(s.WorkingPath); err != nil {
			s.state = StateClosed
			return fmt.Errorf("failed to open data layer: %w", err)
		}
		s.state = StateOpen
		return nil
	}

	pw, err := s.resolver.Get()
	if err != nil {
		s.state = StateClosed
		return err
	}

	container, err := vault.ReadContainer(s.ContainerPath)
	switch {
	case errors.Is(err, kerrors.ErrContainerNotFound):
		// First-time encryption: nothing to decrypt yet.
	case err != nil:
		s.state = StateClosed
		return err
	default:
		plaintext, err := container.Open(pw)
		if err != nil {
			s.state = StateClosed
			if errors.Is(err, kerrors.ErrAuthenticationFailed) {
				return kerrors.ErrWrongPasswordOrCorrupt
			}
			return err
		}
		if err := os.WriteFile(s.WorkingPath, plaintext, 0600); err != nil {
			s.state = StateClosed
			return fmt.Errorf("failed to write working file %s: %w", s.WorkingPath, err)
		}
	}

	if err := s.store.Open(s.WorkingPath); err != nil {
		s.state = StateClosed
		return fmt.Errorf("failed to open data layer: %w", err)
	}
	s.state = StateOpen
	return nil
}

// Close shuts the data layer down and, for an encrypted database, seals
// the working file back into the container. The data layer closes first so
// nothing holds the working file open; after that point the session always
// finishes Closed and the password cache is always cleared, but the
// working file is only deleted once the new container has been atomically
// written. Any failure leaves the working file in place and is returned,
// never swallowed.
func (s *Session) Close() error {
	if s.state != StateOpen {
		return fmt.Errorf("%w: state is %s", kerrors.ErrSessionNotOpen, s.state)
	}
	s.state = StateClosing

	if err := s.store.Close(); err != nil {
		// The data layer may still hold the working file; stay open so the
		// caller can retry.
		s.state = StateOpen
		return fmt.Errorf("failed to close data layer: %w", err)
	}

	if !s.EncryptionEnabled {
		s.state = StateClosed
		return nil
	}

	defer func() {
		s.resolver.Clear()
		s.state = StateClosed
	}()

	pw, err := s.resolver.Get()
	if err != nil {
		return err
	}

	plaintext, err := os.ReadFile(s.WorkingPath)
	if err != nil {
		return fmt.Errorf("failed to read working file %s: %w", s.WorkingPath, err)
	}

	container, err := vault.Seal(pw, plaintext)
	if err != nil {
		return err
	}
	if err := vault.WriteContainer(s.ContainerPath, container); err != nil {
		return err
	}

	if err := os.Remove(s.WorkingPath); err != nil {
		return fmt.Errorf("container written but failed to remove working file %s: %w", s.WorkingPath, err)
	}
	return nil
}
