// Package configs manages the SoloBooks configuration file and the
// XDG-derived filesystem locations for the database, container, and audit
// log.
//
// The config file carries the authoritative database.encrypted flag. The
// lifecycle orchestrator treats that flag (or the existence of a container
// file) as the source of truth for whether encryption is active.
package configs
