package errors

import "errors"

// Container errors indicate a malformed or unreadable encrypted file.
var (
	// ErrContainerFormat indicates the encrypted container is shorter than
	// the minimum valid size or otherwise structurally unparseable.
	ErrContainerFormat = errors.New("encrypted container is malformed or truncated")

	// ErrContainerNotFound indicates no encrypted container exists at the
	// expected path.
	ErrContainerNotFound = errors.New("encrypted container not found")
)

// Cryptographic errors indicate failures during encryption or decryption.
var (
	// ErrAuthenticationFailed indicates the GCM tag did not verify. A wrong
	// password and a corrupted file are cryptographically indistinguishable,
	// so callers must not present them as distinct causes.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrWrongPasswordOrCorrupt is the user-facing form of an
	// authentication failure during database open.
	ErrWrongPasswordOrCorrupt = errors.New("wrong password or corrupted database file")

	// ErrInvalidKeyLength indicates the symmetric key has an unexpected length.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrInvalidNonceLength indicates the nonce has an unexpected length.
	ErrInvalidNonceLength = errors.New("invalid nonce length")
)

// Password errors indicate issues resolving or storing the database password.
var (
	// ErrPasswordUnavailable indicates no resolution step yielded a
	// password. This is never silently treated as "no encryption".
	ErrPasswordUnavailable = errors.New("no database password available")

	// ErrKeychainUnavailable indicates no platform credential store backend
	// could be opened on this system.
	ErrKeychainUnavailable = errors.New("platform credential store unavailable")

	// ErrPasswordMismatch indicates two interactive password entries did
	// not match.
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// Session errors indicate misuse of the database lifecycle.
var (
	// ErrSessionNotOpen indicates an operation requiring an open session
	// was attempted while the session was closed.
	ErrSessionNotOpen = errors.New("database session is not open")

	// ErrSessionAlreadyOpen indicates Open was called on a session that is
	// already open.
	ErrSessionAlreadyOpen = errors.New("database session is already open")

	// ErrEncryptionNotEnabled indicates an encryption-only operation was
	// attempted on an unencrypted database.
	ErrEncryptionNotEnabled = errors.New("database encryption is not enabled")

	// ErrEncryptionAlreadyEnabled indicates enabling encryption was
	// attempted on a database that already has it.
	ErrEncryptionAlreadyEnabled = errors.New("database encryption is already enabled")
)
