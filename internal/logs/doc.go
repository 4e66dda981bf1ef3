// Package logs reads the csv2phon log file for the CLI.
//
// Tail returns the last lines of the log, optionally filtered to those
// mentioning a session, corpus, or event type, together with the byte offset
// where reading stopped. Follow keeps polling from that offset until the
// context ends, so `csv2phon logs --follow` can watch a long batch import.
package logs
