package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philokalos/promptlens/core/errors"
	"github.com/philokalos/promptlens/core/providers"
	"github.com/philokalos/promptlens/core/rewrite"
	"github.com/philokalos/promptlens/core/session"
)

type stubAdapter struct {
	name string
	text string
	err  error
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) RewritePrompt(ctx context.Context, req *providers.RewriteRequest) (*providers.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &providers.Response{Text: s.text}, nil
}

func (s *stubAdapter) ValidateKey(ctx context.Context, apiKey string) (bool, error) {
	return true, nil
}

func newTestEngine(t *testing.T, options Options, adapters ...providers.Adapter) *Engine {
	t.Helper()
	registry := providers.NewRegistry()
	for _, adapter := range adapters {
		registry.Register(adapter)
	}
	e, err := New(registry, options)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestAnalyze_ProducesFullReport(t *testing.T) {
	e := newTestEngine(t, Options{})

	analysis := e.Analyze("fix the login bug", nil)

	assert.NotEmpty(t, analysis.ID)
	assert.Equal(t, "fix the login bug", analysis.Prompt)
	assert.NotEmpty(t, analysis.Variants)
	assert.False(t, analysis.CreatedAt.IsZero())
	assert.Nil(t, analysis.AIRewrite)

	for _, v := range analysis.Variants {
		assert.False(t, v.IsAIGenerated)
	}
}

func TestAnalyzeAndRewrite_NoProvidersAddsSetupVariant(t *testing.T) {
	e := newTestEngine(t, Options{})

	analysis := e.AnalyzeAndRewrite(context.Background(), "fix the login bug", nil, nil)

	last := analysis.Variants[len(analysis.Variants)-1]
	assert.True(t, last.NeedsSetup)
	assert.Equal(t, rewrite.KindAI, last.Kind)
	assert.Zero(t, last.Confidence)
}

func TestAnalyzeAndRewrite_AppendsAIVariantOnSuccess(t *testing.T) {
	adapter := &stubAdapter{
		name: "anthropic",
		text: `{"rewrittenPrompt": "Goal: fix the login timeout in auth.go. Expected output: a diff. Constraints: keep the public API. Success criteria: tests pass.", "explanation": "structured it", "improvements": ["added goal", "added format"]}`,
	}
	e := newTestEngine(t, Options{}, adapter)

	configs := []providers.Config{{Provider: "anthropic", APIKey: "k", Enabled: true, Priority: 1}}
	analysis := e.AnalyzeAndRewrite(context.Background(), "fix the login bug", configs, nil)

	require.NotNil(t, analysis.AIRewrite)
	assert.True(t, analysis.AIRewrite.Success)

	last := analysis.Variants[len(analysis.Variants)-1]
	assert.True(t, last.IsAIGenerated)
	assert.Equal(t, rewrite.KindAI, last.Kind)
	assert.Equal(t, []string{"added goal", "added format"}, last.KeyChanges)
	assert.Greater(t, last.Confidence, 0.0)
}

func TestAnalyzeAndRewrite_AIFailureKeepsRuleVariants(t *testing.T) {
	adapter := &stubAdapter{
		name: "anthropic",
		err:  errors.New(errors.KindUnavailable, "anthropic", "overloaded_error"),
	}
	e := newTestEngine(t, Options{}, adapter)

	configs := []providers.Config{{Provider: "anthropic", APIKey: "k", Enabled: true, Priority: 1}}
	analysis := e.AnalyzeAndRewrite(context.Background(), "fix the login bug", configs, nil)

	require.NotNil(t, analysis.AIRewrite)
	assert.False(t, analysis.AIRewrite.Success)
	assert.NotEmpty(t, analysis.Variants)
	for _, v := range analysis.Variants {
		assert.False(t, v.IsAIGenerated)
	}
}

func TestAnalyzeAndRewrite_EnsembleMode(t *testing.T) {
	adapter := &stubAdapter{
		name: "anthropic",
		text: `{"rewrittenPrompt": "Goal: add request caching. Expected output: a patch."}`,
	}
	e := newTestEngine(t, Options{Ensemble: true}, adapter)

	configs := []providers.Config{{Provider: "anthropic", APIKey: "k", Enabled: true, Priority: 1}}
	analysis := e.AnalyzeAndRewrite(context.Background(), "add caching", configs, nil)

	require.NotNil(t, analysis.AIRewrite)
	assert.True(t, analysis.AIRewrite.Success)
}

func TestRememberSession_CachesAndRestoresHints(t *testing.T) {
	e := newTestEngine(t, Options{})

	rich := &session.Hints{
		SessionID: "s1",
		TechStack: []string{"go", "postgres"},
	}
	e.Analyze("add caching to the user service", rich)

	// Later call with only the session ID gets the cached context back.
	analysis := e.Analyze("add caching to the user service", &session.Hints{SessionID: "s1"})

	found := false
	for _, v := range analysis.Variants {
		if v.Kind == rewrite.KindComprehensive {
			assert.Contains(t, v.RewrittenPrompt, "go, postgres")
			found = true
		}
	}
	assert.True(t, found)
}
