package golden

import (
	"sort"
	"strings"

	"github.com/philokalos/promptlens/core/features"
)

// Severity ranks how damaging a detected anti-pattern is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// AntiPattern is a structural weakness detected independently of the
// dimension scores.
type AntiPattern struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Fix         string   `json:"fix"`
}

// GuidelineScore reports one dimension's score with advice.
type GuidelineScore struct {
	Dimension Dimension `json:"dimension"`
	Score     float64   `json:"score"`
	Advice    string    `json:"advice,omitempty"`
}

// Evaluation is the full quality report for a prompt.
type Evaluation struct {
	OverallScore    float64          `json:"overall_score"`
	Grade           Grade            `json:"grade"`
	Golden          Score            `json:"golden_score"`
	Guidelines      []GuidelineScore `json:"guideline_scores"`
	AntiPatterns    []AntiPattern    `json:"anti_patterns,omitempty"`
	Recommendations []string         `json:"recommendations,omitempty"`
}

// componentRule contributes weight when any of its markers appears.
type componentRule struct {
	weight  float64
	markers []string
}

var goalRules = []componentRule{
	{0.5, []string{"goal:", "goal is", "objective", "purpose", "i want", "i need", "목표", "목적"}},
	{0.3, []string{"fix", "create", "implement", "add", "refactor", "write", "build", "update", "remove", "수정", "만들", "구현", "추가", "작성"}},
}

var outputRules = []componentRule{
	{0.5, []string{"output", "format", "형식", "출력", "형태로"}},
	{0.3, []string{"json", "markdown", "table", "yaml", "csv", "bullet", "list of", "diff", "표로", "목록"}},
	{0.2, []string{"return", "respond with", "produce", "결과"}},
}

var limitsRules = []componentRule{
	{0.5, []string{"must not", "must", "don't", "do not", "only", "never", "하지 마", "금지", "반드시"}},
	{0.3, []string{"avoid", "without", "except", "keep", "limit", "제한", "제외", "유지"}},
	{0.2, []string{"constraint", "scope", "no new", "backward", "범위", "호환"}},
}

var dataRules = []componentRule{
	{0.5, []string{"context", "background", "currently", "we use", "we are using", "환경", "현재", "배경", "사용 중"}},
	{0.2, []string{"version", "stack", "error:", "log", "reproduc", "버전", "로그", "재현"}},
}

var evaluationRules = []componentRule{
	{0.5, []string{"success", "criteria", "acceptance", "verify", "check that", "make sure", "성공", "기준", "검증", "확인"}},
	{0.3, []string{"tests pass", "should pass", "passes", "works when", "통과"}},
	{0.2, []string{"measure", "benchmark", "100%", "coverage", "측정"}},
}

var nextRules = []componentRule{
	{0.5, []string{"next step", "next,", "then", "after that", "afterwards", "다음 단계", "그 다음", "이후에"}},
	{0.3, []string{"finally", "follow up", "followup", "마지막으로", "후속"}},
	{0.2, []string{"plan", "roadmap", "later", "계획"}},
}

// Evaluate scores text against the GOLDEN rubric and detects
// anti-patterns. Deterministic, no I/O.
func Evaluate(text string) Evaluation {
	fs := features.Extract(text)
	lower := strings.ToLower(text)

	score := Score{
		Goal:       scoreGoal(lower, fs),
		Output:     scoreComponents(lower, outputRules),
		Limits:     scoreComponents(lower, limitsRules),
		Data:       scoreData(lower, fs),
		Evaluation: scoreComponents(lower, evaluationRules),
		Next:       scoreNext(lower, fs),
	}

	overall := score.Total()

	return Evaluation{
		OverallScore:    overall,
		Grade:           GradeFor(overall),
		Golden:          score,
		Guidelines:      guidelineScores(score),
		AntiPatterns:    detectAntiPatterns(score, fs, text),
		Recommendations: recommendations(score),
	}
}

func scoreComponents(lower string, rules []componentRule) float64 {
	var total float64
	for _, rule := range rules {
		if containsAny(lower, rule.markers) {
			total += rule.weight
		}
	}
	return clamp01(total)
}

func scoreGoal(lower string, fs features.FeatureSet) float64 {
	total := scoreComponents(lower, goalRules)
	// A concrete target (file, URL, identifier) sharpens the goal.
	if fs.HasFilePath || fs.HasURL {
		total += 0.2
	}
	return clamp01(total)
}

func scoreData(lower string, fs features.FeatureSet) float64 {
	total := scoreComponents(lower, dataRules)
	if fs.HasCodeBlock {
		total += 0.3
	}
	if fs.HasFilePath || fs.HasURL {
		total += 0.2
	}
	return clamp01(total)
}

func scoreNext(lower string, fs features.FeatureSet) float64 {
	total := scoreComponents(lower, nextRules)
	// Numbered steps imply an ordered follow-up plan.
	if strings.Contains(lower, "1.") && strings.Contains(lower, "2.") {
		total += 0.3
	}
	return clamp01(total)
}

var dimensionAdvice = map[Dimension]string{
	DimensionGoal:       "state what you want changed and where",
	DimensionOutput:     "specify the expected output format",
	DimensionLimits:     "name the constraints and what must not change",
	DimensionData:       "include relevant context: versions, code, errors",
	DimensionEvaluation: "define how success will be verified",
	DimensionNext:       "mention the follow-up step after this task",
}

func guidelineScores(score Score) []GuidelineScore {
	out := make([]GuidelineScore, 0, 6)
	for _, d := range Dimensions() {
		gs := GuidelineScore{Dimension: d, Score: score.Get(d)}
		if gs.Score < 0.5 {
			gs.Advice = dimensionAdvice[d]
		}
		out = append(out, gs)
	}
	return out
}

func detectAntiPatterns(score Score, fs features.FeatureSet, text string) []AntiPattern {
	var found []AntiPattern

	if score.Goal < 0.3 {
		found = append(found, AntiPattern{
			ID:          "vague-objective",
			Description: "the prompt does not state a clear objective",
			Severity:    SeverityHigh,
			Fix:         "open with what you want done and where, e.g. \"fix the timeout in auth/session.go\"",
		})
	}
	if score.Output == 0 {
		found = append(found, AntiPattern{
			ID:          "no-output-format",
			Description: "no output format is specified",
			Severity:    SeverityMedium,
			Fix:         "say what shape the answer should take: code, diff, table, list",
		})
	}
	if score.Data < 0.2 && fs.WordCount > 5 {
		found = append(found, AntiPattern{
			ID:          "missing-context",
			Description: "no project or environment context is given",
			Severity:    SeverityMedium,
			Fix:         "add versions, file names, or the error you are seeing",
		})
	}
	if score.Evaluation == 0 {
		found = append(found, AntiPattern{
			ID:          "no-success-criteria",
			Description: "nothing states how success will be judged",
			Severity:    SeverityLow,
			Fix:         "add a check such as \"all existing tests must pass\"",
		})
	}
	if score.Limits == 0 && fs.WordCount >= 12 {
		found = append(found, AntiPattern{
			ID:          "no-constraints",
			Description: "no constraints bound the change",
			Severity:    SeverityLow,
			Fix:         "name what must stay untouched or which approaches to avoid",
		})
	}
	if fs.Length > 600 && !strings.Contains(text, "\n") {
		found = append(found, AntiPattern{
			ID:          "wall-of-text",
			Description: "a long prompt with no structure is hard to follow",
			Severity:    SeverityMedium,
			Fix:         "break the prompt into labeled sections",
		})
	}
	if fs.WordCount > 0 && fs.WordCount < 4 {
		found = append(found, AntiPattern{
			ID:          "bare-demand",
			Description: "the prompt is too short to act on reliably",
			Severity:    SeverityHigh,
			Fix:         "add what, where, and what done looks like",
		})
	}

	return found
}

func recommendations(score Score) []string {
	type weak struct {
		d Dimension
		s float64
	}
	var weaks []weak
	for _, d := range Dimensions() {
		if s := score.Get(d); s < 0.5 {
			weaks = append(weaks, weak{d, s})
		}
	}
	sort.Slice(weaks, func(i, j int) bool {
		if weaks[i].s != weaks[j].s {
			return weaks[i].s < weaks[j].s
		}
		return weaks[i].d < weaks[j].d
	})

	var recs []string
	for _, w := range weaks {
		recs = append(recs, dimensionAdvice[w.d])
		if len(recs) == 3 {
			break
		}
	}
	return recs
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
