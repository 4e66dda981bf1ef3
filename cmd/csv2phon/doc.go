// Package main hosts the csv2phon CLI entrypoint and command graph.
//
// The Cobra command tree loads the TOML configuration once, then runs import
// descriptions against the project store, scaffolds descriptions from CSV
// headers, and lists corpora, sessions, and records. Parsing, binding, and
// persistence live in the internal packages; commands here only resolve
// flags and render results.
package main
