package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_MessageHeuristics(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected Kind
	}{
		{"auth status", "request failed: 401 Unauthorized", KindAuth},
		{"auth phrase", "invalid api key provided", KindAuth},
		{"rate limit", "429 too many requests", KindRateLimited},
		{"quota", "monthly quota exceeded", KindRateLimited},
		{"server error", "upstream returned 503 service unavailable", KindUnavailable},
		{"overloaded", "anthropic: overloaded_error", KindRateLimited},
		{"network dial", "dial tcp 10.0.0.1:443: connection refused", KindNetwork},
		{"network fetch", "fetch failed mid-stream", KindNetwork},
		{"opaque", "something odd happened", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe := Classify("openai", stderrors.New(tt.message))
			require.NotNil(t, pe)
			assert.Equal(t, tt.expected, pe.Kind)
			assert.Equal(t, "openai", pe.Provider)
		})
	}
}

func TestClassify_PassThrough(t *testing.T) {
	orig := New(KindConfiguration, "", "no provider configured")
	wrapped := fmt.Errorf("pipeline: %w", orig)

	pe := Classify("anthropic", wrapped)
	assert.Equal(t, KindConfiguration, pe.Kind)
	assert.Same(t, orig, pe)
}

func TestClassify_Nil(t *testing.T) {
	assert.Nil(t, Classify("openai", nil))
}

func TestFromStatus(t *testing.T) {
	assert.Equal(t, KindAuth, FromStatus("p", 401, "m").Kind)
	assert.Equal(t, KindAuth, FromStatus("p", 403, "m").Kind)
	assert.Equal(t, KindRateLimited, FromStatus("p", 429, "m").Kind)
	assert.Equal(t, KindUnavailable, FromStatus("p", 500, "m").Kind)
	assert.Equal(t, KindUnavailable, FromStatus("p", 529, "m").Kind)
	assert.Equal(t, KindUnknown, FromStatus("p", 400, "m").Kind)
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(KindNetwork, "google", "dial tcp failed"))
	assert.Equal(t, KindNetwork, KindOf(err))
	assert.Equal(t, KindUnknown, KindOf(stderrors.New("plain")))
}

func TestProviderError_UserMessage(t *testing.T) {
	network := New(KindNetwork, "openai", "dial tcp: i/o timeout")
	assert.Contains(t, network.UserMessage(), "check your connection")

	auth := New(KindAuth, "openai", "invalid api key")
	assert.Equal(t, "invalid api key", auth.UserMessage())
}

func TestProviderError_ErrorString(t *testing.T) {
	assert.Equal(t, "openai: boom", New(KindUnknown, "openai", "boom").Error())
	assert.Equal(t, "boom", New(KindUnknown, "", "boom").Error())
}
