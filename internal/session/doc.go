// Package session models an imported transcript: the session header, its
// participants and tier declarations, and the ordered utterance records.
//
// Record fields hold tagged Values. A field is either grouped, with one value
// per group, or scalar, where only group 0 is used. Values that failed to
// parse are kept as Unvalidated so group counts stay aligned across fields.
package session
