package orchestrator

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/philokalos/promptlens/core/errors"
	"github.com/philokalos/promptlens/core/providers"
	"github.com/philokalos/promptlens/core/rewrite"
)

// Result is the outcome of an orchestrated rewrite. A failed rewrite is
// reported here rather than as a Go error so callers can fold it into an
// analysis without aborting.
type Result struct {
	Success         bool     `json:"success"`
	RewrittenPrompt string   `json:"rewrittenPrompt,omitempty"`
	Explanation     string   `json:"explanation,omitempty"`
	Improvements    []string `json:"improvements,omitempty"`
	Provider        string   `json:"provider,omitempty"`
	Error           string   `json:"error,omitempty"`

	// WasFallback is set when a provider other than the first in the chain
	// produced the result; FallbackReason records why the previous one failed.
	WasFallback    bool   `json:"wasFallback,omitempty"`
	FallbackReason string `json:"fallbackReason,omitempty"`
}

// Orchestrator runs rewrites across the configured provider chain.
type Orchestrator struct {
	registry *providers.Registry
}

// New creates an orchestrator backed by the given registry.
func New(registry *providers.Registry) *Orchestrator {
	return &Orchestrator{registry: registry}
}

// RewriteWithFallback tries each enabled provider in priority order until
// one succeeds. All providers failing yields a failed Result, not an error.
func (o *Orchestrator) RewriteWithFallback(ctx context.Context, req *providers.RewriteRequest, configs []providers.Config) *Result {
	chain := providers.EnabledConfigs(configs)
	if len(chain) == 0 {
		return &Result{
			Success: false,
			Error:   errors.New(errors.KindConfiguration, "", "no provider configured").UserMessage(),
		}
	}

	var lastFailure string
	for i, config := range chain {
		adapter, err := o.adapterFor(config)
		if err != nil {
			lastFailure = fmt.Sprintf("%s: %s", config.Type(), userMessage(err))
			continue
		}

		resp, err := adapter.RewritePrompt(ctx, req)
		if err != nil {
			lastFailure = fmt.Sprintf("%s: %s", adapter.Name(), userMessage(err))
			continue
		}

		result := resultFrom(resp.Text, req.OriginalPrompt, adapter.Name())
		if i > 0 {
			result.WasFallback = true
			result.FallbackReason = lastFailure
		}
		return result
	}

	// Individual failure causes stay inside this layer; the caller gets
	// only the aggregate message.
	return &Result{
		Success: false,
		Error:   errors.New(errors.KindAllProvidersFailed, "", "all providers failed").UserMessage(),
	}
}

// adapterFor resolves a registered adapter or constructs one on demand.
// Construction fails before any network call, so an entry with a blank
// API key dies here as a configuration error.
func (o *Orchestrator) adapterFor(config providers.Config) (providers.Adapter, error) {
	if adapter := o.registry.Get(config.Type()); adapter != nil {
		return adapter, nil
	}
	adapter, err := providers.NewAdapter(config)
	if err != nil {
		return nil, err
	}
	o.registry.Register(adapter)
	return adapter, nil
}

func resultFrom(raw, original, provider string) *Result {
	payload := parseRewriteResponse(raw)
	return &Result{
		Success:         true,
		RewrittenPrompt: rewrite.CleanPlaceholders(payload.RewrittenPrompt, original),
		Explanation:     payload.Explanation,
		Improvements:    payload.Improvements,
		Provider:        provider,
	}
}

func userMessage(err error) string {
	var perr *errors.ProviderError
	if stderrors.As(err, &perr) {
		return perr.UserMessage()
	}
	return err.Error()
}
