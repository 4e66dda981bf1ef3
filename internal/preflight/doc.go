// Package preflight checks that an import can run before any session is
// written.
//
// The checks cover the project and base directories, the configured CSV
// encoding, each selected file of an import description (present, readable,
// header mapped), and whether a syllabifier exists for the description's
// language. The CLI "check" command prints the results; nothing here touches
// the project store.
package preflight
