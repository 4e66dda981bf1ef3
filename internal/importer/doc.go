// Package importer turns CSV files into sessions according to an import
// description.
//
// For each selected file entry the Importer resolves and opens the CSV, binds
// the header row to column maps once (BindHeader), builds one record per data
// row (RecordBuilder), syllabifies and aligns the phonetic groups of each
// record (PostProcessor), and saves the session under its write lock.
//
// Failures are isolated per file. Field values that do not parse are kept as
// unvalidated values, unmapped columns are logged and dropped, and a session
// whose write lock is held elsewhere is reported as unsaved rather than as an
// error.
package importer
