package orchestrator

import (
	"encoding/json"
	"strings"
)

const fallbackExplanation = "Model returned an unstructured rewrite; using the raw text."

type rewritePayload struct {
	RewrittenPrompt string   `json:"rewrittenPrompt"`
	Explanation     string   `json:"explanation"`
	Improvements    []string `json:"improvements"`
}

// parseRewriteResponse extracts the structured payload from raw model text.
// Models sometimes wrap the JSON in prose or fences, so the first balanced
// brace block is located and decoded. When no usable JSON is found the raw
// text itself becomes the rewritten prompt.
func parseRewriteResponse(raw string) rewritePayload {
	if block := extractJSONBlock(raw); block != "" {
		var payload rewritePayload
		if err := json.Unmarshal([]byte(block), &payload); err == nil && payload.RewrittenPrompt != "" {
			return payload
		}
	}

	return rewritePayload{
		RewrittenPrompt: strings.TrimSpace(raw),
		Explanation:     fallbackExplanation,
	}
}

// extractJSONBlock returns the first balanced top-level brace block in text,
// tracking string literals and escapes so braces inside values don't
// unbalance the scan. Returns "" when no complete block exists.
func extractJSONBlock(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	return ""
}
