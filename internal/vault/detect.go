package vault

import (
	"fmt"
	"io"
	"os"
)

// LooksEncrypted guesses whether the file at path is an encrypted container
// by inspecting its first bytes. It is a heuristic for UX convenience only
// (import detection, doctor output); the lifecycle always branches on the
// configuration flag or container existence, never on this guess, and
// adversarially crafted input can fool it in either direction.
//
// A file is classified as likely encrypted only when it is long enough to
// hold a salt and nonce AND its would-be salt is neither all zero bytes nor
// entirely text. Text here means printable ASCII plus the usual whitespace
// (newline, carriage return, tab), so multi-line exports classify as
// plaintext. A real random salt is near-certain to contain a byte outside
// that set; plaintext exports and empty files are not.
func LooksEncrypted(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() < SaltSize+NonceSize {
		return false, nil
	}

	head := make([]byte, SaltSize)
	if _, err := io.ReadFull(f, head); err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	allZero := true
	allText := true
	for _, b := range head {
		if b != 0 {
			allZero = false
		}
		if !isTextByte(b) {
			allText = false
		}
	}
	return !allZero && !allText, nil
}

// isTextByte reports whether b occurs in ordinary text: printable ASCII or
// common whitespace. A 32-byte random salt contains a byte outside this set
// with overwhelming probability.
func isTextByte(b byte) bool {
	if b >= 32 && b <= 126 {
		return true
	}
	return b == '\n' || b == '\r' || b == '\t'
}
