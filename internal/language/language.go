package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Undetermined is the ISO 639-3 code for an unknown language.
const Undetermined = "und"

// names maps English language names and ISO 639-2/B codes to their base
// language.
var names = map[string]xlanguage.Base{}

var bibliographic = map[string]string{
	"chi": "zh", "cze": "cs", "dut": "nl", "fre": "fr", "ger": "de",
	"gre": "el", "per": "fa", "wel": "cy",
}

func init() {
	for _, code := range []string{
		"en", "es", "fr", "de", "it", "pt", "nl", "da", "sv", "nb", "no", "fi",
		"pl", "ru", "ja", "ko", "zh", "ar", "hi", "cy", "ga", "el", "tr", "he",
	} {
		base := xlanguage.MustParseBase(code)
		name := display.English.Languages().Name(base)
		names[strings.ToLower(name)] = base
	}
	for code, base := range bibliographic {
		names[code] = xlanguage.MustParseBase(base)
	}
}

func lookup(code string) (xlanguage.Base, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return xlanguage.Base{}, false
	}
	if base, ok := names[code]; ok {
		return base, true
	}
	tag, err := xlanguage.Parse(code)
	if err != nil {
		return xlanguage.Base{}, false
	}
	base, conf := tag.Base()
	if conf == xlanguage.No || base.String() == Undetermined {
		return xlanguage.Base{}, false
	}
	return base, true
}

// ToISO3 returns the ISO 639-3 code for a code, tag, or English name, or
// Undetermined when the input is not recognized.
func ToISO3(code string) string {
	base, ok := lookup(code)
	if !ok {
		return Undetermined
	}
	return base.ISO3()
}

// BaseCode returns the shortest code for the base language of input ("en"
// for "eng", "en-GB", or "English"). ok is false when input is not
// recognized.
func BaseCode(code string) (string, bool) {
	base, ok := lookup(code)
	if !ok {
		return "", false
	}
	return base.String(), true
}

// DisplayName returns the English name for a recognized code, "Unknown" for
// empty input, and the uppercased input otherwise.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	base, ok := lookup(code)
	if !ok {
		return strings.ToUpper(strings.TrimSpace(code))
	}
	return display.English.Languages().Name(base)
}

// NormalizeList splits a participant language list on commas and whitespace
// and returns the distinct ISO 639-3 codes joined by spaces. Unrecognized
// entries are kept lowercased so no information is lost.
func NormalizeList(value string) string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		code := strings.ToLower(field)
		if iso3 := ToISO3(field); iso3 != Undetermined {
			code = iso3
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return strings.Join(out, " ")
}
