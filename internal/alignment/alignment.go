// Package alignment computes correspondences between target and actual
// phone sequences.
package alignment

import (
	"strings"

	"csv2phon/internal/ipa"
)

// Gap marks an inserted or deleted position in a Pair.
const Gap = -1

// Pair links a target segment index to an actual segment index. Either side
// may be Gap, never both.
type Pair struct {
	Target int `json:"target"`
	Actual int `json:"actual"`
}

// PhoneMap is the alignment of two transcripts. Indices refer to the
// transcripts' Segments.
type PhoneMap struct {
	Target *ipa.Transcript `json:"-"`
	Actual *ipa.Transcript `json:"-"`
	Pairs  []Pair          `json:"pairs"`
	Cost   int             `json:"cost"`
}

// String renders the alignment as space-separated "target=actual" pairs with
// "∅" for gaps.
func (m *PhoneMap) String() string {
	if m == nil {
		return ""
	}
	targets := m.Target.Segments()
	actuals := m.Actual.Segments()
	parts := make([]string, 0, len(m.Pairs))
	for _, p := range m.Pairs {
		parts = append(parts, segmentText(targets, p.Target)+"="+segmentText(actuals, p.Actual))
	}
	return strings.Join(parts, " ")
}

func segmentText(segs []*ipa.Phone, idx int) string {
	if idx == Gap || idx >= len(segs) {
		return "∅"
	}
	return segs[idx].Text
}

// Costs weights the edit operations used by Aligner.
type Costs struct {
	Indel           int
	SameBase        int
	SameClass       int
	CrossClass      int
	ConstituentSkew int
}

// DefaultCosts prefers same-class substitutions over an insertion plus a
// deletion, and cross-class substitutions only marginally.
func DefaultCosts() Costs {
	return Costs{Indel: 3, SameBase: 1, SameClass: 2, CrossClass: 5, ConstituentSkew: 1}
}

// Aligner performs global minimum-cost alignment of two segment sequences.
type Aligner struct {
	costs Costs
}

// NewAligner returns an aligner using costs.
func NewAligner(costs Costs) *Aligner {
	return &Aligner{costs: costs}
}

// Align aligns the segments of target and actual. Nil transcripts are treated
// as empty.
func (a *Aligner) Align(target, actual *ipa.Transcript) *PhoneMap {
	ts := target.Segments()
	as := actual.Segments()
	n, m := len(ts), len(as)

	score := make([][]int, n+1)
	for i := range score {
		score[i] = make([]int, m+1)
		score[i][0] = i * a.costs.Indel
	}
	for j := 0; j <= m; j++ {
		score[0][j] = j * a.costs.Indel
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			best := score[i-1][j-1] + a.substitution(ts[i-1], as[j-1])
			if c := score[i-1][j] + a.costs.Indel; c < best {
				best = c
			}
			if c := score[i][j-1] + a.costs.Indel; c < best {
				best = c
			}
			score[i][j] = best
		}
	}

	var pairs []Pair
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && score[i][j] == score[i-1][j-1]+a.substitution(ts[i-1], as[j-1]):
			pairs = append(pairs, Pair{Target: i - 1, Actual: j - 1})
			i--
			j--
		case i > 0 && score[i][j] == score[i-1][j]+a.costs.Indel:
			pairs = append(pairs, Pair{Target: i - 1, Actual: Gap})
			i--
		default:
			pairs = append(pairs, Pair{Target: Gap, Actual: j - 1})
			j--
		}
	}
	for l, r := 0, len(pairs)-1; l < r; l, r = l+1, r-1 {
		pairs[l], pairs[r] = pairs[r], pairs[l]
	}
	return &PhoneMap{Target: target, Actual: actual, Pairs: pairs, Cost: score[n][m]}
}

func (a *Aligner) substitution(t, s *ipa.Phone) int {
	cost := 0
	switch {
	case t.Text == s.Text:
	case t.Base() == s.Base():
		cost = a.costs.SameBase
	case t.IsVowel() == s.IsVowel():
		cost = a.costs.SameClass
	default:
		cost = a.costs.CrossClass
	}
	if t.Constituent != ipa.Unassigned && s.Constituent != ipa.Unassigned && t.Constituent != s.Constituent {
		cost += a.costs.ConstituentSkew
	}
	return cost
}
