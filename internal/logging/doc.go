// Package logging assembles structured slog loggers and formatting helpers used
// across csv2phon.
//
// It owns the console/JSON handlers and output plumbing, the standardized
// attribute keys (corpus, session, file, row, column), and a fan-out handler so
// a batch import can mirror its log stream into a dedicated file. Loggers are
// always passed explicitly; a no-op logger is available for tests and wiring
// code that cannot fail.
package logging
