// Package language normalizes the language codes found in import
// descriptions and session participants.
//
// Descriptions in the wild mix ISO 639-1 codes, ISO 639-3 codes, BCP 47 tags,
// and English names ("en", "eng", "en-GB", "English"). Sessions store ISO
// 639-3 codes, the syllabifier library keys on base languages, and the CLI
// shows English display names. All of those conversions live here.
package language
