// Package database orchestrates the open/close lifecycle of the SoloBooks
// data file around the at-rest encryption core.
//
// A Session moves through Closed → Opening → Open → Closing → Closed.
// Opening an encrypted database resolves the password, decrypts the
// container into a plaintext working file, and hands that path to the data
// layer. Closing reverses it: the data layer is shut down first, the
// working bytes are sealed under a fresh salt and nonce, the container is
// atomically replaced, and only then is the working file deleted. If
// anything fails after the data layer closes, the working file is
// deliberately left on disk for manual recovery; losing the ciphertext is
// recoverable, losing the plaintext is not.
//
// Exactly one Session exists per process. The package performs no file
// locking; running two processes against one data directory is undefined
// behavior the surrounding application must avoid.
package database
