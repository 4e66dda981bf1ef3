package syllabifier

import (
	"strings"

	"csv2phon/internal/ipa"
)

const (
	sonorityObstruent = iota
	sonorityFricative
	sonorityNasal
	sonorityLiquid
	sonorityGlide
	sonorityVowel
)

var sonorityClasses = []struct {
	runes string
	level int
}{
	{"fvszʃʒθðxɣhɦχʁçʝɸβʂʐɕʑħʕ", sonorityFricative},
	{"mnŋɲɱɳɴ", sonorityNasal},
	{"lrɹɾɽʎɭɫʟʀɻ", sonorityLiquid},
	{"jwɥɰ", sonorityGlide},
}

// Sonority is a language-neutral syllabifier. Vowels and syllabic consonants
// form nuclei; intervocalic consonants go to the following onset as long as
// sonority rises toward the nucleus, and the remainder closes the previous
// syllable. Word and explicit syllable boundaries always split syllables.
type Sonority struct {
	maxOnset int
}

// NewSonority returns a sonority syllabifier allowing onsets of up to three
// consonants.
func NewSonority() *Sonority {
	return &Sonority{maxOnset: 3}
}

func (s *Sonority) Name() string { return "sonority" }

func (s *Sonority) Syllabify(phones []*ipa.Phone) {
	var span []*ipa.Phone
	for _, p := range phones {
		if p == nil {
			continue
		}
		switch p.Kind {
		case ipa.KindWordBoundary, ipa.KindSyllableBoundary, ipa.KindStress:
			// Stress opens a syllable just like an explicit boundary.
			s.syllabifySpan(span)
			span = span[:0]
		default:
			span = append(span, p)
		}
	}
	s.syllabifySpan(span)
}

func (s *Sonority) syllabifySpan(span []*ipa.Phone) {
	if len(span) == 0 {
		return
	}
	var nuclei []int
	for i, p := range span {
		p.Constituent = ipa.Unassigned
		if p.IsVowel() {
			p.Constituent = ipa.Nucleus
			nuclei = append(nuclei, i)
		}
	}
	if len(nuclei) == 0 {
		return
	}

	// Leading cluster: rising sonority is onset, anything before is appendix.
	s.assignOnset(span[:nuclei[0]], true)

	for k := 0; k+1 < len(nuclei); k++ {
		cluster := span[nuclei[k]+1 : nuclei[k+1]]
		onset := s.assignOnset(cluster, false)
		for _, p := range cluster[:len(cluster)-onset] {
			p.Constituent = ipa.Coda
		}
	}

	// Trailing cluster: falling sonority is coda, a rise starts the appendix.
	tail := span[nuclei[len(nuclei)-1]+1:]
	prev := sonorityVowel
	appendix := false
	for _, p := range tail {
		level := sonorityOf(p)
		if appendix || level >= prev {
			appendix = true
			p.Constituent = ipa.RightAppendix
			continue
		}
		p.Constituent = ipa.Coda
		prev = level
	}
}

// assignOnset marks the longest suffix of cluster whose sonority strictly rises
// toward the nucleus as onset and returns its length. When leading is set the
// consonants outside the onset become left appendix.
func (s *Sonority) assignOnset(cluster []*ipa.Phone, leading bool) int {
	n := 0
	next := sonorityVowel
	for i := len(cluster) - 1; i >= 0 && n < s.maxOnset; i-- {
		level := sonorityOf(cluster[i])
		if level >= next {
			break
		}
		n++
		next = level
	}
	for i, p := range cluster {
		switch {
		case i >= len(cluster)-n:
			p.Constituent = ipa.Onset
		case leading:
			p.Constituent = ipa.LeftAppendix
		}
	}
	return n
}

func sonorityOf(p *ipa.Phone) int {
	if p.IsVowel() {
		return sonorityVowel
	}
	base := p.Base()
	for _, class := range sonorityClasses {
		if strings.ContainsRune(class.runes, base) {
			return class.level
		}
	}
	return sonorityObstruent
}
