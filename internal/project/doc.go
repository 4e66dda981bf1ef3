// Package project persists corpora and sessions in a SQLite database under the
// project directory and guards session writes with file locks.
//
// Open creates <dir>/project.db and <dir>/locks on first use. Sessions are
// stored as JSON payloads keyed by corpus and session name. A session can
// only be saved while the caller holds its write lock, obtained through
// AcquireWriteLock and released with ReleaseWriteLock.
package project
