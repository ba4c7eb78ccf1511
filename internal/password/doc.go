// Package password resolves the database password for the current process
// and caches it for the session.
//
// Resolution order, first match wins:
//
//  1. A value explicitly set with Set (the front-end already collected it).
//  2. The SOLOBOOKS_DB_PASSWORD environment variable (scripted use).
//  3. The platform credential store (OS keychain), when available.
//  4. The interactive prompt hook supplied by the front-end.
//
// Once any step yields a password it is cached in memory for the rest of
// the process; Clear zeroes the cached bytes so the secret's lifetime is
// bounded by the session, not the process. The password is never persisted
// by this package except through the credential store, and never logged.
package password
