package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRewriteResponse_CleanJSON(t *testing.T) {
	raw := `{"rewrittenPrompt": "Fix the auth bug in login.go", "explanation": "added a target file", "improvements": ["named the file"]}`

	payload := parseRewriteResponse(raw)

	assert.Equal(t, "Fix the auth bug in login.go", payload.RewrittenPrompt)
	assert.Equal(t, "added a target file", payload.Explanation)
	assert.Equal(t, []string{"named the file"}, payload.Improvements)
}

func TestParseRewriteResponse_JSONWrappedInProse(t *testing.T) {
	raw := "Here is the rewrite:\n```json\n{\"rewrittenPrompt\": \"do the thing\", \"explanation\": \"e\"}\n```\nHope that helps!"

	payload := parseRewriteResponse(raw)

	assert.Equal(t, "do the thing", payload.RewrittenPrompt)
	assert.Equal(t, "e", payload.Explanation)
}

func TestParseRewriteResponse_BracesInsideStrings(t *testing.T) {
	raw := `{"rewrittenPrompt": "use map[string]any{} here", "explanation": "kept the {braces}"}`

	payload := parseRewriteResponse(raw)

	assert.Equal(t, "use map[string]any{} here", payload.RewrittenPrompt)
}

func TestParseRewriteResponse_NoJSONFallsBackToRaw(t *testing.T) {
	raw := "  Just rewrite it as: fix the login bug in auth.go  "

	payload := parseRewriteResponse(raw)

	assert.Equal(t, "Just rewrite it as: fix the login bug in auth.go", payload.RewrittenPrompt)
	assert.Equal(t, fallbackExplanation, payload.Explanation)
	assert.Empty(t, payload.Improvements)
}

func TestParseRewriteResponse_EmptyPromptFieldFallsBack(t *testing.T) {
	raw := `{"rewrittenPrompt": "", "explanation": "nothing"}`

	payload := parseRewriteResponse(raw)

	assert.Equal(t, raw, payload.RewrittenPrompt)
	assert.Equal(t, fallbackExplanation, payload.Explanation)
}

func TestExtractJSONBlock(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, extractJSONBlock(`prefix {"a": 1} suffix`))
	assert.Equal(t, `{"a": {"b": 2}}`, extractJSONBlock(`{"a": {"b": 2}} trailing`))
	assert.Equal(t, `{"s": "escaped \" and }"}`, extractJSONBlock(`{"s": "escaped \" and }"}`))
	assert.Empty(t, extractJSONBlock("no braces here"))
	assert.Empty(t, extractJSONBlock(`{"unClosed": "value"`))
}
