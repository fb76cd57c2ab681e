// Package rewrite produces candidate rewrites of a prompt. Rule-based
// variants are deterministic and template-driven; provider-backed
// variants from the orchestrator share the same shape so consumers do
// not care where a candidate came from.
package rewrite

// Kind tags the generation strategy behind a variant.
type Kind string

const (
	KindConservative  Kind = "conservative"
	KindBalanced      Kind = "balanced"
	KindComprehensive Kind = "comprehensive"
	KindCOSP          Kind = "cosp"
	KindAI            Kind = "ai"
)

// Variant is one candidate rewritten prompt.
type Variant struct {
	RewrittenPrompt string   `json:"rewritten_prompt"`
	KeyChanges      []string `json:"key_changes,omitempty"`
	Confidence      float64  `json:"confidence"`
	Kind            Kind     `json:"variant"`
	NeedsSetup      bool     `json:"needs_setup,omitempty"`
	IsAIGenerated   bool     `json:"is_ai_generated,omitempty"`
}
