// Package csvio reads delimited text files with a configurable delimiter,
// quote character, and text encoding.
//
// Files using the standard double quote are read with encoding/csv in lazy
// quote mode. Any other quote character goes through a small tokenizer that
// follows the same rules: quoted fields may span lines, a doubled quote
// escapes itself, and blank lines are skipped.
package csvio
