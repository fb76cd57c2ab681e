// Package classify assigns an intent label and a task category to raw
// prompt text using weighted keyword scoring with position, negation,
// disambiguation and co-occurrence adjustments. Classification is
// deterministic and does no I/O.
package classify

import (
	"github.com/philokalos/promptlens/core/features"
)

// Intent is the communicative intent of a prompt.
type Intent string

const (
	IntentCommand       Intent = "command"
	IntentQuestion      Intent = "question"
	IntentInstruction   Intent = "instruction"
	IntentFeedback      Intent = "feedback"
	IntentContext       Intent = "context"
	IntentClarification Intent = "clarification"
	IntentUnknown       Intent = "unknown"
)

// Category is the task category of a prompt.
type Category string

const (
	CategoryCodeGeneration Category = "code-generation"
	CategoryBugFix         Category = "bug-fix"
	CategoryRefactoring    Category = "refactoring"
	CategoryTesting        Category = "testing"
	CategoryDocumentation  Category = "documentation"
	CategoryCodeReview     Category = "code-review"
	CategoryArchitecture   Category = "architecture"
	CategoryDeployment     Category = "deployment"
	CategoryDatabase       Category = "database"
	CategoryPerformance    Category = "performance"
	CategorySecurity       Category = "security"
	CategoryUnknown        Category = "unknown"
)

// Categories lists every known task category, excluding unknown.
func Categories() []Category {
	return []Category{
		CategoryCodeGeneration,
		CategoryBugFix,
		CategoryRefactoring,
		CategoryTesting,
		CategoryDocumentation,
		CategoryCodeReview,
		CategoryArchitecture,
		CategoryDeployment,
		CategoryDatabase,
		CategoryPerformance,
		CategorySecurity,
	}
}

// CategoryScore pairs a category with its derived confidence.
type CategoryScore struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
}

// MultiLabel carries the multi-label view of category scoring: the
// primary category plus up to two non-zero-score alternates.
type MultiLabel struct {
	Primary       Category        `json:"primary"`
	Secondary     []CategoryScore `json:"secondary,omitempty"`
	IsMultiIntent bool            `json:"is_multi_intent"`
}

// Result is the output of a single classification.
type Result struct {
	Intent             Intent              `json:"intent"`
	IntentConfidence   float64             `json:"intent_confidence"`
	TaskCategory       Category            `json:"task_category"`
	CategoryConfidence float64             `json:"category_confidence"`
	MatchedKeywords    []string            `json:"matched_keywords,omitempty"`
	Features           features.FeatureSet `json:"features"`
	MultiLabel         *MultiLabel         `json:"multi_label,omitempty"`
}
