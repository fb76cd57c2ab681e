package providers

import (
	"context"
	stderrors "errors"

	"google.golang.org/genai"

	"github.com/philokalos/promptlens/core/errors"
)

// GoogleAdapter rewrites prompts via the Gemini API. The genai client
// requires a context at construction, so the client is built per call.
type GoogleAdapter struct {
	apiKey string
	model  string
}

// NewGoogleAdapter builds an adapter from a validated config entry.
func NewGoogleAdapter(config Config) (*GoogleAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.New(errors.KindConfiguration, string(ProviderTypeGoogle), err.Error())
	}

	return &GoogleAdapter{
		apiKey: config.APIKey,
		model:  config.ModelOrDefault(),
	}, nil
}

// Name returns the provider identifier.
func (a *GoogleAdapter) Name() string {
	return string(ProviderTypeGoogle)
}

// RewritePrompt performs a single non-streaming completion.
func (a *GoogleAdapter) RewritePrompt(ctx context.Context, req *RewriteRequest) (*Response, error) {
	client, err := a.newClient(ctx, a.apiKey)
	if err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		MaxOutputTokens:   defaultMaxTokens,
	}
	if req.Temperature != nil {
		config.Temperature = genai.Ptr(float32(*req.Temperature))
	}

	result, err := client.Models.GenerateContent(ctx, a.model, genai.Text(buildUserPrompt(req)), config)
	if err != nil {
		return nil, a.normalizeError(err)
	}

	text := result.Text()
	if text == "" {
		return nil, emptyResponseError(a.Name())
	}

	return &Response{Text: text}, nil
}

// ValidateKey counts tokens on a one-word input, the cheapest
// authenticated call the API offers.
func (a *GoogleAdapter) ValidateKey(ctx context.Context, apiKey string) (bool, error) {
	client, err := a.newClient(ctx, apiKey)
	if err != nil {
		return false, err
	}

	_, err = client.Models.CountTokens(ctx, a.model, genai.Text("ping"), nil)
	if err != nil {
		normalized := a.normalizeError(err)
		if errors.KindOf(normalized) == errors.KindAuth {
			return false, nil
		}
		return false, normalized
	}
	return true, nil
}

func (a *GoogleAdapter) newClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(errors.KindConfiguration, a.Name(), "failed to build client", err)
	}
	return client, nil
}

func (a *GoogleAdapter) normalizeError(err error) error {
	var apierr genai.APIError
	if stderrors.As(err, &apierr) {
		return errors.FromStatus(a.Name(), apierr.Code, apierr.Message)
	}
	return errors.Classify(a.Name(), err)
}
