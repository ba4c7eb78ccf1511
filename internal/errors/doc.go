// Package errors defines sentinel errors for the SoloBooks encryption
// subsystem.
//
// Errors are grouped by the layer that produces them: container format,
// cryptography, password resolution, and session lifecycle. Call sites wrap
// these sentinels with fmt.Errorf and %w so callers can test with
// errors.Is while still seeing the underlying cause.
//
// The taxonomy is deliberate about what it does NOT distinguish: a GCM tag
// mismatch is surfaced as "wrong password or corrupted file" because the
// two causes cannot be told apart cryptographically, and the UI must not
// pretend otherwise.
package errors
