package errors

import (
	stderrors "errors"
	"net/http"
	"strings"
)

// KindOf extracts the Kind from any error in err's chain, defaulting to
// KindUnknown.
func KindOf(err error) Kind {
	var pe *ProviderError
	if stderrors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}

// FromStatus maps an HTTP status code onto a Kind.
func FromStatus(provider string, status int, message string) *ProviderError {
	kind := KindUnknown
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuth
	case status == http.StatusTooManyRequests:
		kind = KindRateLimited
	case status >= 500:
		kind = KindUnavailable
	}
	return New(kind, provider, message)
}

var (
	authMarkers = []string{
		"401", "403", "unauthorized", "forbidden", "invalid api key",
		"invalid x-api-key", "authentication", "permission denied", "api key not valid",
	}
	rateLimitMarkers = []string{
		"429", "rate limit", "rate_limit", "too many requests", "quota", "overloaded_error",
	}
	unavailableMarkers = []string{
		"500", "502", "503", "504", "internal server error", "bad gateway",
		"service unavailable", "gateway timeout", "overloaded",
	}
	networkMarkers = []string{
		"network", "fetch", "connection refused", "connection reset", "dial tcp",
		"no such host", "timeout", "tls handshake", "eof", "broken pipe",
	}
)

// Classify normalizes an arbitrary provider failure into a
// ProviderError by message heuristics. Errors already carrying a Kind
// pass through unchanged.
func Classify(provider string, err error) *ProviderError {
	if err == nil {
		return nil
	}

	var pe *ProviderError
	if stderrors.As(err, &pe) {
		return pe
	}

	msg := err.Error()
	lower := strings.ToLower(msg)

	switch {
	case containsAny(lower, authMarkers):
		return Wrap(KindAuth, provider, msg, err)
	case containsAny(lower, rateLimitMarkers):
		return Wrap(KindRateLimited, provider, msg, err)
	case containsAny(lower, unavailableMarkers):
		return Wrap(KindUnavailable, provider, msg, err)
	case containsAny(lower, networkMarkers):
		return Wrap(KindNetwork, provider, msg, err)
	default:
		return Wrap(KindUnknown, provider, msg, err)
	}
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
