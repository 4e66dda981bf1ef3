// Package config loads, normalizes, and validates csv2phon configuration.
//
// Configuration is read from TOML (default ~/.config/csv2phon/config.toml, or
// ./csv2phon.toml when present), layered over Default(). Paths are expanded to
// absolute form, CSV dialect settings are checked against the encodings known
// to golang.org/x/text, and the default syllabifier language must be a valid
// BCP 47 or ISO 639 tag.
package config
