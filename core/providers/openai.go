package providers

import (
	"context"
	stderrors "errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"

	"github.com/philokalos/promptlens/core/errors"
)

// OpenAIAdapter rewrites prompts via OpenAI's Responses API.
type OpenAIAdapter struct {
	client openai.Client
	model  string
}

// NewOpenAIAdapter builds an adapter from a validated config entry.
func NewOpenAIAdapter(config Config) (*OpenAIAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.New(errors.KindConfiguration, string(ProviderTypeOpenAI), err.Error())
	}

	return &OpenAIAdapter{
		client: openai.NewClient(option.WithAPIKey(config.APIKey)),
		model:  config.ModelOrDefault(),
	}, nil
}

// Name returns the provider identifier.
func (a *OpenAIAdapter) Name() string {
	return string(ProviderTypeOpenAI)
}

// RewritePrompt performs a single non-streaming completion.
func (a *OpenAIAdapter) RewritePrompt(ctx context.Context, req *RewriteRequest) (*Response, error) {
	input := responses.ResponseInputParam{
		responses.ResponseInputItemParamOfMessage(systemPrompt, responses.EasyInputMessageRoleSystem),
		responses.ResponseInputItemParamOfMessage(buildUserPrompt(req), responses.EasyInputMessageRoleUser),
	}

	params := responses.ResponseNewParams{
		Model:           shared.ResponsesModel(a.model),
		Input:           responses.ResponseNewParamsInputUnion{OfInputItemList: input},
		MaxOutputTokens: openai.Int(defaultMaxTokens),
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}

	result, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, a.normalizeError(err)
	}

	text := result.OutputText()
	if text == "" {
		return nil, emptyResponseError(a.Name())
	}

	return &Response{Text: text}, nil
}

// ValidateKey lists models with the given key.
func (a *OpenAIAdapter) ValidateKey(ctx context.Context, apiKey string) (bool, error) {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	_, err := client.Models.List(ctx)
	if err != nil {
		normalized := a.normalizeError(err)
		if errors.KindOf(normalized) == errors.KindAuth {
			return false, nil
		}
		return false, normalized
	}
	return true, nil
}

func (a *OpenAIAdapter) normalizeError(err error) error {
	var apierr *openai.Error
	if stderrors.As(err, &apierr) {
		return errors.FromStatus(a.Name(), apierr.StatusCode, apierr.Error())
	}
	return errors.Classify(a.Name(), err)
}
