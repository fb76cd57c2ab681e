package providers

import (
	"context"

	"github.com/philokalos/promptlens/core/errors"
	"github.com/philokalos/promptlens/core/golden"
	"github.com/philokalos/promptlens/core/session"
)

// Adapter is the minimal surface a rewrite backend must expose. Adapters
// return the raw model text; parsing and scoring happen in the orchestrator.
type Adapter interface {
	// Name returns the provider identifier (e.g. "anthropic").
	Name() string

	// RewritePrompt asks the model to rewrite req.OriginalPrompt. A response
	// with no text is an error, never an empty Response.
	RewritePrompt(ctx context.Context, req *RewriteRequest) (*Response, error)

	// ValidateKey performs a cheap authenticated call to check an API key.
	ValidateKey(ctx context.Context, apiKey string) (bool, error)
}

// RewriteRequest carries everything an adapter needs to build its prompt.
type RewriteRequest struct {
	OriginalPrompt string
	GoldenScores   golden.Score
	Issues         []string
	SessionContext *session.Hints

	// Temperature overrides the provider default when non-nil. The ensemble
	// path sets it per sample.
	Temperature *float64
}

// Response is the raw model output.
type Response struct {
	Text string
}

func emptyResponseError(provider string) error {
	return errors.New(errors.KindResponseShape, provider, "no text in response")
}
