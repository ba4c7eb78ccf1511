package database

import (
	"errors"
	"fmt"
	"os"

	"github.com/solobooks/solobooks/internal/configs"
	kerrors "github.com/solobooks/solobooks/internal/errors"
	"github.com/solobooks/solobooks/internal/vault"
)

// EnableEncryption seals the plaintext data file at dataPath into its
// container and removes the plaintext. The plaintext is only deleted after
// the container has been atomically written.
func EnableEncryption(dataPath string, pw []byte) error {
	containerPath := configs.ContainerPath(dataPath)
	if _, err := os.Stat(containerPath); err == nil {
		return kerrors.ErrEncryptionAlreadyEnabled
	}

	plaintext, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("failed to read data file %s: %w", dataPath, err)
	}

	container, err := vault.Seal(pw, plaintext)
	if err != nil {
		return err
	}
	if err := vault.WriteContainer(containerPath, container); err != nil {
		return err
	}

	if err := os.Remove(dataPath); err != nil {
		return fmt.Errorf("container written but failed to remove plaintext %s: %w", dataPath, err)
	}
	return nil
}

// DisableEncryption decrypts the container back into a plaintext data file
// and removes the container. The container is only deleted after the
// plaintext has been written.
func DisableEncryption(dataPath string, pw []byte) error {
	containerPath := configs.ContainerPath(dataPath)

	container, err := vault.ReadContainer(containerPath)
	if err != nil {
		if errors.Is(err, kerrors.ErrContainerNotFound) {
			return kerrors.ErrEncryptionNotEnabled
		}
		return err
	}

	plaintext, err := container.Open(pw)
	if err != nil {
		if errors.Is(err, kerrors.ErrAuthenticationFailed) {
			return kerrors.ErrWrongPasswordOrCorrupt
		}
		return err
	}

	if err := os.WriteFile(dataPath, plaintext, 0600); err != nil {
		return fmt.Errorf("failed to write data file %s: %w", dataPath, err)
	}
	if err := os.Remove(containerPath); err != nil {
		return fmt.Errorf("plaintext written but failed to remove container %s: %w", containerPath, err)
	}
	return nil
}

// ChangePassword re-encrypts the container under a new password. The
// fresh salt and nonce come from Seal; the replacement is atomic, so a
// crash mid-change leaves the old container intact and the old password
// valid.
func ChangePassword(dataPath string, oldPw, newPw []byte) error {
	containerPath := configs.ContainerPath(dataPath)

	container, err := vault.ReadContainer(containerPath)
	if err != nil {
		if errors.Is(err, kerrors.ErrContainerNotFound) {
			return kerrors.ErrEncryptionNotEnabled
		}
		return err
	}

	plaintext, err := container.Open(oldPw)
	if err != nil {
		if errors.Is(err, kerrors.ErrAuthenticationFailed) {
			return kerrors.ErrWrongPasswordOrCorrupt
		}
		return err
	}

	resealed, err := vault.Seal(newPw, plaintext)
	if err != nil {
		return err
	}
	return vault.WriteContainer(containerPath, resealed)
}
