package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philokalos/promptlens/core/errors"
)

type fakeAdapter struct {
	name          string
	validateCalls int
	valid         bool
	validateErr   error
	response      *Response
	rewriteErr    error
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) RewritePrompt(ctx context.Context, req *RewriteRequest) (*Response, error) {
	if f.rewriteErr != nil {
		return nil, f.rewriteErr
	}
	return f.response, nil
}

func (f *fakeAdapter) ValidateKey(ctx context.Context, apiKey string) (bool, error) {
	f.validateCalls++
	return f.valid, f.validateErr
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	adapter := &fakeAdapter{name: "anthropic"}

	registry.Register(adapter)

	assert.Equal(t, adapter, registry.Get(ProviderTypeAnthropic))
	assert.Nil(t, registry.Get(ProviderTypeOpenAI))
	assert.Len(t, registry.Adapters(), 1)
}

func TestRegistry_ValidateKey_CachesResult(t *testing.T) {
	registry := NewRegistry()
	adapter := &fakeAdapter{name: "anthropic", valid: true}
	registry.Register(adapter)

	ctx := context.Background()

	valid, err := registry.ValidateKey(ctx, ProviderTypeAnthropic, "sk-test")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = registry.ValidateKey(ctx, ProviderTypeAnthropic, "sk-test")
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Equal(t, 1, adapter.validateCalls)

	// A different key misses the cache.
	_, err = registry.ValidateKey(ctx, ProviderTypeAnthropic, "sk-other")
	require.NoError(t, err)
	assert.Equal(t, 2, adapter.validateCalls)
}

func TestRegistry_ValidateKey_ErrorsNotCached(t *testing.T) {
	registry := NewRegistry()
	adapter := &fakeAdapter{
		name:        "openai",
		validateErr: errors.New(errors.KindNetwork, "openai", "dial tcp: timeout"),
	}
	registry.Register(adapter)

	ctx := context.Background()

	_, err := registry.ValidateKey(ctx, ProviderTypeOpenAI, "sk-test")
	require.Error(t, err)

	_, err = registry.ValidateKey(ctx, ProviderTypeOpenAI, "sk-test")
	require.Error(t, err)
	assert.Equal(t, 2, adapter.validateCalls)
}

func TestRegistry_ValidateKey_UnregisteredProvider(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.ValidateKey(context.Background(), ProviderTypeGoogle, "key")
	require.Error(t, err)
	assert.Equal(t, errors.KindConfiguration, errors.KindOf(err))
}

func TestNewAdapter_UnknownProvider(t *testing.T) {
	_, err := NewAdapter(Config{Provider: "mystery", APIKey: "k"})
	require.Error(t, err)
	assert.Equal(t, errors.KindConfiguration, errors.KindOf(err))
}
