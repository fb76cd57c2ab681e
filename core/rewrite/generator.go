package rewrite

import (
	"fmt"
	"sort"
	"strings"

	"github.com/philokalos/promptlens/core/classify"
	"github.com/philokalos/promptlens/core/golden"
	"github.com/philokalos/promptlens/core/session"
)

// HighQualityThreshold is the overall score above which a prompt is
// left alone rather than given cosmetic edits.
const HighQualityThreshold = 0.8

// Generator produces deterministic rule-based rewrite variants.
type Generator struct {
	classifier *classify.Classifier
}

// NewGenerator builds a Generator. The classifier selects the
// category-specific template used by the balanced variant.
func NewGenerator(classifier *classify.Classifier) *Generator {
	return &Generator{classifier: classifier}
}

// Generate returns the rule-based variants for text, ordered
// conservative, balanced, comprehensive. Variant confidences are
// non-decreasing in that order: a higher-effort rewrite addresses
// strictly more weaknesses.
//
// Prompts already at or above HighQualityThreshold come back as a
// single unchanged variant tagged "no rewrite needed".
func (g *Generator) Generate(text string, eval golden.Evaluation, hints *session.Hints) []Variant {
	trimmed := strings.TrimSpace(text)

	if eval.OverallScore >= HighQualityThreshold {
		return []Variant{{
			RewrittenPrompt: trimmed,
			KeyChanges:      []string{"no rewrite needed - prompt already scores well"},
			Confidence:      0.95,
			Kind:            KindConservative,
		}}
	}

	category := classify.CategoryUnknown
	if g.classifier != nil {
		category = g.classifier.Classify(text).TaskCategory
	}

	weakest := weakestDimensions(eval.Golden)

	variants := []Variant{
		g.build(KindConservative, trimmed, weakest[:1], category, hints, eval),
		g.build(KindBalanced, trimmed, weakest[:balancedSectionCount(eval.Golden, weakest)], category, hints, eval),
		g.comprehensive(trimmed, category, hints, eval),
	}

	enforceConfidenceOrder(variants)
	return variants
}

// build appends sections for the given dimensions to the original
// prompt.
func (g *Generator) build(kind Kind, text string, dims []golden.Dimension, category classify.Category, hints *session.Hints, before golden.Evaluation) Variant {
	parts := []string{text}
	changes := make([]string, 0, len(dims))

	for _, d := range dims {
		if d == golden.DimensionData {
			parts = append(parts, contextSection(category, hints))
		} else {
			parts = append(parts, renderSection(d, category))
		}
		changes = append(changes, fmt.Sprintf("added %s section", strings.ToLower(sectionHeadings[d])))
	}

	rewritten := strings.Join(parts, "\n\n")
	return Variant{
		RewrittenPrompt: rewritten,
		KeyChanges:      changes,
		Confidence:      g.confidence(before, rewritten, hints),
		Kind:            kind,
	}
}

// comprehensive reconstructs the prompt against the full six-dimension
// structure, folding the original text into the goal.
func (g *Generator) comprehensive(text string, category classify.Category, hints *session.Hints, before golden.Evaluation) Variant {
	sections := []string{
		fmt.Sprintf("%s: %s", sectionHeadings[golden.DimensionGoal], text),
		contextSection(category, hints),
		renderSection(golden.DimensionLimits, category),
		renderSection(golden.DimensionOutput, category),
		renderSection(golden.DimensionEvaluation, category),
		renderSection(golden.DimensionNext, category),
	}

	rewritten := strings.Join(sections, "\n\n")
	return Variant{
		RewrittenPrompt: rewritten,
		KeyChanges:      []string{"restructured the prompt into the full six-part GOLDEN layout"},
		Confidence:      g.confidence(before, rewritten, hints),
		Kind:            KindComprehensive,
	}
}

func (g *Generator) confidence(before golden.Evaluation, rewritten string, hints *session.Hints) float64 {
	after := golden.Evaluate(rewritten)

	cleared := len(before.AntiPatterns) - len(after.AntiPatterns)
	if cleared < 0 {
		cleared = 0
	}

	return Calibrate(before.Golden, after.Golden, cleared, hints.Richness())
}

// weakestDimensions orders the six dimensions ascending by score,
// breaking ties in canonical dimension order.
func weakestDimensions(score golden.Score) []golden.Dimension {
	dims := golden.Dimensions()
	ordered := make([]golden.Dimension, len(dims))
	copy(ordered, dims)

	sort.SliceStable(ordered, func(i, j int) bool {
		return score.Get(ordered[i]) < score.Get(ordered[j])
	})
	return ordered
}

// balancedSectionCount picks 2 or 3 sections for the balanced variant:
// 3 when the third-weakest dimension is still clearly weak.
func balancedSectionCount(score golden.Score, weakest []golden.Dimension) int {
	if score.Get(weakest[2]) < 0.5 {
		return 3
	}
	return 2
}

// enforceConfidenceOrder asserts the ordering invariant by raising each
// variant's confidence to at least its predecessor's.
func enforceConfidenceOrder(variants []Variant) {
	for i := 1; i < len(variants); i++ {
		if variants[i].Confidence < variants[i-1].Confidence {
			variants[i].Confidence = variants[i-1].Confidence
		}
	}
}
