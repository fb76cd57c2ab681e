package rewrite

import (
	"regexp"
	"strings"
)

// Bracketed template markers such as "[insert file name here]" that a
// model sometimes leaves behind in a rewrite.
var placeholderPattern = regexp.MustCompile(`\[[^\[\]\n]{0,80}\]`)

// CleanPlaceholders strips leftover bracketed template markers from a
// rewritten prompt. Cleaning an already-clean rewrite returns it
// unchanged apart from whitespace trimming; if stripping empties the
// text entirely, the original prompt is returned instead so the caller
// never receives an empty rewrite.
func CleanPlaceholders(rewritten, original string) string {
	cleaned := placeholderPattern.ReplaceAllString(rewritten, "")
	cleaned = collapseBlankRuns(cleaned)
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return original
	}
	return cleaned
}

var blankRunPattern = regexp.MustCompile(`\n{3,}`)

func collapseBlankRuns(s string) string {
	return blankRunPattern.ReplaceAllString(s, "\n\n")
}
