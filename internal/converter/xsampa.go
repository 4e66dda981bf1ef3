package converter

import "strings"

// xsampaTable maps X-SAMPA symbols to IPA. Multi-character symbols (those using
// the backslash or backtick modifiers, and the "_h" diacritic) win over their
// single-character prefixes.
var xsampaTable = map[string]string{
	"A": "ɑ", "{": "æ", "6": "ɐ", "Q": "ɒ", "E": "ɛ", "@": "ə", "3": "ɜ",
	"I": "ɪ", "O": "ɔ", "2": "ø", "9": "œ", "&": "ɶ", "U": "ʊ", "}": "ʉ",
	"V": "ʌ", "Y": "ʏ", "1": "ɨ", "M": "ɯ", "7": "ɤ", "8": "ɵ",
	"B": "β", "C": "ç", "D": "ð", "G": "ɣ", "H": "ɥ", "J": "ɲ", "K": "ɬ",
	"L": "ʎ", "N": "ŋ", "P": "ʋ", "R": "ʁ", "S": "ʃ", "T": "θ", "W": "ʍ",
	"X": "χ", "Z": "ʒ", "?": "ʔ", "4": "ɾ", "5": "ɫ", "g": "ɡ",
	`r\`: "ɹ", `j\`: "ʝ", `h\`: "ɦ", `x\`: "ɧ", `l\`: "ɺ", `s\`: "ɕ",
	`z\`: "ʑ", `?\`: "ʕ", `R\`: "ʀ", `G\`: "ɢ", `N\`: "ɴ", `X\`: "ħ",
	`3\`: "ɞ", `@\`: "ɘ", `r\` + "`": "ɻ",
	"n`": "ɳ", "t`": "ʈ", "d`": "ɖ", "s`": "ʂ", "z`": "ʐ", "r`": "ɽ", "l`": "ɭ",
	":": "ː", `"`: "ˈ", "%": "ˌ", "~": "̃", "=": "̩", "_h": "ʰ",
}

const xsampaMaxSymbol = 3

// XSAMPAToIPA converts an X-SAMPA transcription to IPA using longest-match
// substitution. Characters without a mapping pass through unchanged.
func XSAMPAToIPA(value string) string {
	var b strings.Builder
	b.Grow(len(value) * 2)
	for i := 0; i < len(value); {
		matched := false
		for size := xsampaMaxSymbol; size > 0; size-- {
			if i+size > len(value) {
				continue
			}
			if ipa, ok := xsampaTable[value[i:i+size]]; ok {
				b.WriteString(ipa)
				i += size
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(value[i])
			i++
		}
	}
	return b.String()
}
