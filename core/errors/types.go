// Package errors defines the fixed error-kind vocabulary for the
// rewrite pipeline. Provider adapters normalize backend failures into
// these kinds at the boundary so the orchestrator never inspects
// SDK-specific error types.
package errors

import (
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// KindUnknown is a failure no heuristic could place.
	KindUnknown Kind = iota

	// KindConfiguration means no usable provider was supplied: missing
	// API key, nothing enabled. Reported synchronously, no network
	// attempted.
	KindConfiguration

	// KindAuth means the backend rejected credentials. Terminal for
	// that provider within a request.
	KindAuth

	// KindRateLimited means the backend signaled throttling. Another
	// provider or a later retry of the whole pipeline may succeed.
	KindRateLimited

	// KindUnavailable means the backend signaled a transient server
	// failure. Handled like rate limiting.
	KindUnavailable

	// KindNetwork is a transport-level failure, distinguishable by
	// message heuristics, with its own user-facing message.
	KindNetwork

	// KindResponseShape means the backend returned no usable text, or
	// text that does not fit the expected template.
	KindResponseShape

	// KindAllProvidersFailed is the orchestrator-level terminal failure
	// after exhausting the fallback chain.
	KindAllProvidersFailed
)

var kindNames = map[Kind]string{
	KindUnknown:            "unknown",
	KindConfiguration:      "configuration",
	KindAuth:               "auth",
	KindRateLimited:        "rate_limited",
	KindUnavailable:        "unavailable",
	KindNetwork:            "network",
	KindResponseShape:      "response_shape",
	KindAllProvidersFailed: "all_providers_failed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ProviderError is a normalized pipeline failure.
type ProviderError struct {
	Kind     Kind
	Provider string
	Message  string
	wrapped  error
}

// New builds a ProviderError without a wrapped cause.
func New(kind Kind, provider, message string) *ProviderError {
	return &ProviderError{Kind: kind, Provider: provider, Message: message}
}

// Wrap builds a ProviderError around an underlying cause.
func Wrap(kind Kind, provider, message string, err error) *ProviderError {
	return &ProviderError{Kind: kind, Provider: provider, Message: message, wrapped: err}
}

func (e *ProviderError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.wrapped
}

// UserMessage is the message suitable for surfacing to an end user.
// Network failures get a distinct hint; everything else passes through.
func (e *ProviderError) UserMessage() string {
	if e.Kind == KindNetwork {
		return "network error - check your connection and try again"
	}
	return e.Message
}
