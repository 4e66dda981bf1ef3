// Package converter provides the cell converters applied to CSV values before
// they are parsed, keyed by the filter name used in import descriptions.
package converter
