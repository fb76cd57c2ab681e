package classify

import (
	"sort"
	"strings"
)

const (
	// Matches in the first quarter of the text carry extra weight;
	// users usually state their goal up front.
	positionBonusWeight = 1.5
	baseMatchWeight     = 1.0

	// Deducted from a keyword's contribution when a negating word
	// appears in the window around the match.
	negationPenalty = 1.0

	negationWindowBefore = 18
	negationWindowAfter  = 12
)

// keywordMatch records one matched keyword and where it matched.
type keywordMatch struct {
	keyword string
	pos     int
	weight  float64
}

// labelScore is the scored evidence for a single label.
type labelScore struct {
	label   string
	score   float64
	matches []keywordMatch
}

// scoreLabels runs the generic keyword scorer over one table. The same
// function serves both the intent and the category tables; labels are
// data, not code paths.
func (ct *compiledTables) scoreLabels(text string, table KeywordTable) map[string]*labelScore {
	scores := make(map[string]*labelScore, len(table))
	quarter := len(text) / 4

	for label, langs := range table {
		ls := &labelScore{label: label}

		for lang, keywords := range langs {
			korean := lang == "ko"
			for _, kw := range keywords {
				pos := ct.matchKeyword(text, kw, korean)
				if pos < 0 {
					continue
				}

				weight := baseMatchWeight
				if pos <= quarter {
					weight = positionBonusWeight
				}
				if ct.negated(text, pos, len(kw)) {
					weight -= negationPenalty
				}

				ls.matches = append(ls.matches, keywordMatch{keyword: kw, pos: pos, weight: weight})
				ls.score += weight
			}
		}

		if ls.score < 0 {
			ls.score = 0
		}
		if len(ls.matches) > 0 {
			sort.Slice(ls.matches, func(i, j int) bool { return ls.matches[i].pos < ls.matches[j].pos })
			scores[label] = ls
		}
	}

	return scores
}

// negated reports whether a negating word appears in the window around
// a keyword match at byte offset pos with byte length n.
func (ct *compiledTables) negated(text string, pos, n int) bool {
	lo := pos - negationWindowBefore
	if lo < 0 {
		lo = 0
	}
	hi := pos + n + negationWindowAfter
	if hi > len(text) {
		hi = len(text)
	}
	window := strings.ToLower(text[lo:hi])

	for _, neg := range ct.negations {
		if strings.Contains(window, neg) {
			return true
		}
	}
	return false
}

// rankLabels orders label scores descending, breaking exact ties by
// label name so output stays deterministic.
func rankLabels(scores map[string]*labelScore) []*labelScore {
	ranked := make([]*labelScore, 0, len(scores))
	for _, ls := range scores {
		ranked = append(ranked, ls)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].label < ranked[j].label
	})
	return ranked
}

// matchedKeywords flattens ranked matches into an ordered keyword list,
// first by match position, deduplicated.
func matchedKeywords(ranked []*labelScore) []string {
	var all []keywordMatch
	for _, ls := range ranked {
		all = append(all, ls.matches...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].pos < all[j].pos })

	seen := make(map[string]struct{}, len(all))
	var out []string
	for _, m := range all {
		if _, ok := seen[m.keyword]; ok {
			continue
		}
		seen[m.keyword] = struct{}{}
		out = append(out, m.keyword)
	}
	return out
}

// totalScore sums label scores.
func totalScore(scores map[string]*labelScore) float64 {
	var total float64
	for _, ls := range scores {
		total += ls.score
	}
	return total
}
