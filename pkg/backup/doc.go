// Package backup snapshots conflicting target paths into a
// timestamped, append-only session directory before they are
// overwritten, and persists a plain-text manifest of what was copied.
package backup
