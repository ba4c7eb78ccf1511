// Package audit appends lifecycle operations to a JSON Lines log in the
// user's config directory.
//
// The log answers "when was this database last encrypted, unlocked, or
// re-keyed" without recording any secret material. Writes are best-effort:
// a full disk never blocks a database close.
package audit
