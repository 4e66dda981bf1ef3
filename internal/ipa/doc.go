// Package ipa models phonetic transcriptions as sequences of phones with
// word/syllable boundaries and stress markers, and parses them from text.
//
// Syllabifiers annotate segments in place through Phone.Constituent; aligners
// consume Transcript.Segments.
package ipa
