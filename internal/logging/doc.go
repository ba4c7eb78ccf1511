// Package logger provides leveled logging for SoloBooks CLI commands.
//
// Verbosity is controlled by the --verbose and --debug flags: without
// either, only errors and critical warnings are shown. Commands create a
// Logger in their PersistentPreRun and share it across the command tree.
//
// Nothing in this package ever receives a password or derived key; call
// sites log paths and operation names only.
package logger
