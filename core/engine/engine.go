package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/philokalos/promptlens/core/classify"
	"github.com/philokalos/promptlens/core/golden"
	"github.com/philokalos/promptlens/core/orchestrator"
	"github.com/philokalos/promptlens/core/providers"
	"github.com/philokalos/promptlens/core/rewrite"
	"github.com/philokalos/promptlens/core/session"
)

const sessionTTL = 10 * time.Minute

// Analysis is the full report for one prompt: classification, quality
// evaluation, and the rewrite variants in confidence order.
type Analysis struct {
	ID             string               `json:"id"`
	Prompt         string               `json:"prompt"`
	Classification classify.Result      `json:"classification"`
	Evaluation     golden.Evaluation    `json:"evaluation"`
	Variants       []rewrite.Variant    `json:"variants"`
	AIRewrite      *orchestrator.Result `json:"aiRewrite,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
}

// Options tunes how the AI rewrite stage runs.
type Options struct {
	// Ensemble samples the primary provider at several temperatures and
	// keeps the best-scoring candidate instead of a single completion.
	Ensemble bool
}

// Engine wires the analysis pipeline together.
type Engine struct {
	classifier   *classify.Classifier
	generator    *rewrite.Generator
	orchestrator *orchestrator.Orchestrator
	sessions     *session.ContextCache
	options      Options
}

// New builds an engine on top of a provider registry.
func New(registry *providers.Registry, options Options) (*Engine, error) {
	classifier, err := classify.New()
	if err != nil {
		return nil, err
	}

	return &Engine{
		classifier:   classifier,
		generator:    rewrite.NewGenerator(classifier),
		orchestrator: orchestrator.New(registry),
		sessions:     session.NewContextCache(sessionTTL, nil),
		options:      options,
	}, nil
}

// Close releases the classifier's cache resources.
func (e *Engine) Close() {
	e.classifier.Close()
}

// Analyze runs the local pipeline only: classification, GOLDEN evaluation,
// and rule-based variants. No provider is contacted.
func (e *Engine) Analyze(prompt string, hints *session.Hints) *Analysis {
	hints = e.rememberSession(hints)

	classification := e.classifier.Classify(prompt)
	evaluation := golden.Evaluate(prompt)
	variants := e.generator.Generate(prompt, evaluation, hints)

	return &Analysis{
		ID:             uuid.NewString(),
		Prompt:         prompt,
		Classification: classification,
		Evaluation:     evaluation,
		Variants:       variants,
		CreatedAt:      time.Now().UTC(),
	}
}

// AnalyzeAndRewrite runs Analyze and then attempts an AI rewrite through
// the configured providers. A failed AI stage never fails the analysis:
// the rule-based variants always survive. With no enabled provider the
// analysis gains a setup-needed placeholder variant instead.
func (e *Engine) AnalyzeAndRewrite(ctx context.Context, prompt string, configs []providers.Config, hints *session.Hints) *Analysis {
	hints = e.rememberSession(hints)
	analysis := e.Analyze(prompt, hints)

	if len(providers.EnabledConfigs(configs)) == 0 {
		analysis.Variants = append(analysis.Variants, setupVariant())
		return analysis
	}

	req := &providers.RewriteRequest{
		OriginalPrompt: prompt,
		GoldenScores:   analysis.Evaluation.Golden,
		Issues:         issuesFrom(analysis.Evaluation),
		SessionContext: hints,
	}

	var result *orchestrator.Result
	if e.options.Ensemble {
		result = e.orchestrator.RewriteEnsemble(ctx, req, configs)
	} else {
		result = e.orchestrator.RewriteWithFallback(ctx, req, configs)
	}
	analysis.AIRewrite = result

	if result.Success {
		analysis.Variants = append(analysis.Variants, e.aiVariant(analysis, result, hints))
	}
	return analysis
}

func (e *Engine) aiVariant(analysis *Analysis, result *orchestrator.Result, hints *session.Hints) rewrite.Variant {
	after := golden.Evaluate(result.RewrittenPrompt)
	cleared := len(analysis.Evaluation.AntiPatterns) - len(after.AntiPatterns)
	if cleared < 0 {
		cleared = 0
	}

	var richness float64
	if hints != nil {
		richness = hints.Richness()
	}

	return rewrite.Variant{
		RewrittenPrompt: result.RewrittenPrompt,
		KeyChanges:      result.Improvements,
		Confidence:      rewrite.Calibrate(analysis.Evaluation.Golden, after.Golden, cleared, richness),
		Kind:            rewrite.KindAI,
		IsAIGenerated:   true,
	}
}

// rememberSession stores fresh hints and falls back to cached hints for a
// known session when the caller passes only a session ID.
func (e *Engine) rememberSession(hints *session.Hints) *session.Hints {
	if hints == nil || hints.SessionID == "" {
		return hints
	}
	if hints.Richness() > 0 {
		e.sessions.Put(hints)
		return hints
	}
	if cached := e.sessions.Get(hints.SessionID); cached != nil {
		return cached
	}
	return hints
}

func setupVariant() rewrite.Variant {
	return rewrite.Variant{
		RewrittenPrompt: "",
		KeyChanges:      []string{"configure an AI provider to unlock model-based rewrites"},
		Confidence:      0,
		Kind:            rewrite.KindAI,
		NeedsSetup:      true,
	}
}

func issuesFrom(evaluation golden.Evaluation) []string {
	issues := make([]string, 0, len(evaluation.AntiPatterns)+len(evaluation.Recommendations))
	for _, ap := range evaluation.AntiPatterns {
		issues = append(issues, ap.Description)
	}
	issues = append(issues, evaluation.Recommendations...)
	return issues
}
