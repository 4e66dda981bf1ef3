// Package description loads import descriptions: the corpus to import into,
// how CSV columns map onto record fields, the participants to declare, and
// the files to import. Descriptions are TOML or YAML, chosen by extension.
package description
