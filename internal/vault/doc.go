// Package vault implements the at-rest encryption primitives for the
// SoloBooks database file: key derivation, authenticated encryption, and
// the on-disk container codec.
//
// # Container Format
//
// An encrypted database is a single file with the layout
//
//	offset 0    len 32   salt (random bytes)
//	offset 32   len 12   nonce (random bytes)
//	offset 44   len N    ciphertext || 16-byte GCM tag
//
// This layout is a frozen interface contract shared with the desktop
// front-end. Both implementations must produce and consume byte-identical
// containers; any change here is a format break and requires a new
// container version, not an edit to this one. Conformance vectors live in
// vectors_test.go and are run unchanged against every implementation.
//
// Keys are derived from the user password with PBKDF2-HMAC-SHA-256 at
// 100,000 iterations. Every encryption generates a brand-new random salt
// and nonce, so a key is never used for more than one GCM message.
//
// Files are processed as whole blobs in memory. That bounds the design to
// databases that comfortably fit in RAM, which is acceptable for a
// personal tool and is a documented scaling limit, not an oversight.
package vault
