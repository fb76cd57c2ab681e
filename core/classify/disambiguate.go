package classify

// disambiguationRule resolves a keyword that legitimately belongs to
// more than one category. Rules run after raw scoring: when the shared
// keyword matched under both candidates, the preferred category is
// boosted and the other penalized, unless one of the flip keywords also
// matched, in which case the adjustment reverses.
type disambiguationRule struct {
	keyword string
	prefer  Category
	over    Category
	flipOn  []string
	weight  float64
}

var disambiguationRules = []disambiguationRule{
	{keyword: "test", prefer: CategoryTesting, over: CategoryCodeReview, flipOn: []string{"review", "리뷰", "pr"}, weight: 0.5},
	{keyword: "schema", prefer: CategoryDatabase, over: CategoryArchitecture, flipOn: []string{"design", "설계", "interface"}, weight: 0.5},
	{keyword: "cache", prefer: CategoryPerformance, over: CategoryDatabase, flipOn: []string{"query", "쿼리"}, weight: 0.4},
	{keyword: "fix", prefer: CategoryBugFix, over: CategoryCodeGeneration, flipOn: []string{"create", "만들어", "new"}, weight: 0.4},
	{keyword: "add", prefer: CategoryCodeGeneration, over: CategoryBugFix, flipOn: []string{"bug", "버그", "error"}, weight: 0.4},
}

// coOccurrencePair is a category pair that frequently appears together.
// When both members carry evidence, each receives a small joint boost so
// reinforcing signals do not split confidence.
type coOccurrencePair struct {
	a, b  Category
	bonus float64
}

var coOccurrencePairs = []coOccurrencePair{
	{CategoryDeployment, CategoryDatabase, 0.3},
	{CategoryDeployment, CategorySecurity, 0.2},
	{CategoryTesting, CategoryBugFix, 0.3},
	{CategoryPerformance, CategoryDatabase, 0.3},
	{CategoryCodeGeneration, CategoryTesting, 0.2},
}

// applyDisambiguation consumes the matched keyword sets and the raw
// score vector and returns the adjusted score vector. The input map is
// mutated in place and returned for convenience.
func applyDisambiguation(scores map[string]*labelScore) map[string]*labelScore {
	matchedAnywhere := make(map[string]struct{})
	for _, ls := range scores {
		for _, m := range ls.matches {
			matchedAnywhere[m.keyword] = struct{}{}
		}
	}

	for _, rule := range disambiguationRules {
		preferLS, okPrefer := scores[string(rule.prefer)]
		overLS, okOver := scores[string(rule.over)]
		if !okPrefer || !okOver {
			continue
		}
		if !hasMatch(preferLS, rule.keyword) || !hasMatch(overLS, rule.keyword) {
			continue
		}

		winner, loser := preferLS, overLS
		for _, flip := range rule.flipOn {
			if _, ok := matchedAnywhere[flip]; ok {
				winner, loser = overLS, preferLS
				break
			}
		}

		winner.score += rule.weight
		loser.score -= rule.weight
		if loser.score < 0 {
			loser.score = 0
		}
	}

	for _, pair := range coOccurrencePairs {
		a, okA := scores[string(pair.a)]
		b, okB := scores[string(pair.b)]
		if okA && okB && a.score > 0 && b.score > 0 {
			a.score += pair.bonus
			b.score += pair.bonus
		}
	}

	return scores
}

func hasMatch(ls *labelScore, keyword string) bool {
	for _, m := range ls.matches {
		if m.keyword == keyword {
			return true
		}
	}
	return false
}
