package providers

import (
	"context"
	stderrors "errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/philokalos/promptlens/core/errors"
)

// AnthropicAdapter rewrites prompts via Anthropic's Messages API.
type AnthropicAdapter struct {
	client anthropic.Client
	model  string
}

// NewAnthropicAdapter builds an adapter from a validated config entry.
func NewAnthropicAdapter(config Config) (*AnthropicAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.New(errors.KindConfiguration, string(ProviderTypeAnthropic), err.Error())
	}

	return &AnthropicAdapter{
		client: anthropic.NewClient(option.WithAPIKey(config.APIKey)),
		model:  config.ModelOrDefault(),
	}, nil
}

// Name returns the provider identifier.
func (a *AnthropicAdapter) Name() string {
	return string(ProviderTypeAnthropic)
}

// RewritePrompt performs a single non-streaming completion.
func (a *AnthropicAdapter) RewritePrompt(ctx context.Context, req *RewriteRequest) (*Response, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: defaultMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildUserPrompt(req))),
		},
	}
	if req.Temperature != nil {
		params.Temperature = anthropic.Float(*req.Temperature)
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, a.normalizeError(err)
	}

	var text string
	for _, block := range msg.Content {
		if b, ok := block.AsAny().(anthropic.TextBlock); ok {
			text += b.Text
		}
	}
	if text == "" {
		return nil, emptyResponseError(a.Name())
	}

	return &Response{Text: text}, nil
}

// ValidateKey lists models with the given key, the cheapest authenticated
// call the API offers.
func (a *AnthropicAdapter) ValidateKey(ctx context.Context, apiKey string) (bool, error) {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	_, err := client.Models.List(ctx, anthropic.ModelListParams{
		Limit: anthropic.Int(1),
	})
	if err != nil {
		normalized := a.normalizeError(err)
		if errors.KindOf(normalized) == errors.KindAuth {
			return false, nil
		}
		return false, normalized
	}
	return true, nil
}

func (a *AnthropicAdapter) normalizeError(err error) error {
	var apierr *anthropic.Error
	if stderrors.As(err, &apierr) {
		return errors.FromStatus(a.Name(), apierr.StatusCode, apierr.Error())
	}
	return errors.Classify(a.Name(), err)
}
