package providers

import (
	"fmt"
	"strings"

	"github.com/philokalos/promptlens/core/golden"
	"github.com/philokalos/promptlens/core/session"
)

const systemPrompt = `You are a prompt engineering assistant. You rewrite developer prompts so an AI coding assistant can act on them without guessing.

A strong prompt states the goal, the expected output format, constraints, relevant context, success criteria, and next steps.

Respond with a single JSON object and nothing else:
{"rewrittenPrompt": "the improved prompt", "explanation": "one or two sentences on what you changed", "improvements": ["short change descriptions"]}

Rules:
- Preserve the author's intent and language. Do not invent requirements.
- Never wrap the JSON in markdown fences.
- Do not leave bracketed placeholders like [project name] in the rewritten prompt.`

// buildUserPrompt assembles the user turn from the original prompt, its
// per-dimension scores, detected issues, and any session hints.
func buildUserPrompt(req *RewriteRequest) string {
	var b strings.Builder

	b.WriteString("Rewrite the following prompt.\n\nOriginal prompt:\n")
	b.WriteString(req.OriginalPrompt)
	b.WriteString("\n\nCurrent quality scores (0 to 1):\n")
	for _, dim := range golden.Dimensions() {
		fmt.Fprintf(&b, "- %s: %.2f\n", dim, req.GoldenScores.Get(dim))
	}

	if len(req.Issues) > 0 {
		b.WriteString("\nDetected issues:\n")
		for _, issue := range req.Issues {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
	}

	if hints := req.SessionContext; hints != nil {
		writeHints(&b, hints)
	}

	b.WriteString("\nFocus on the weakest dimensions. Keep the prompt as short as it can be while still complete.")
	return b.String()
}

func writeHints(b *strings.Builder, hints *session.Hints) {
	var lines []string
	if hints.ProjectPath != "" {
		lines = append(lines, "Project: "+hints.ProjectPath)
	}
	if len(hints.TechStack) > 0 {
		lines = append(lines, "Tech stack: "+strings.Join(hints.TechStack, ", "))
	}
	if len(hints.RecentFiles) > 0 {
		lines = append(lines, "Recently touched files: "+strings.Join(hints.RecentFiles, ", "))
	}
	if hints.Language != "" {
		lines = append(lines, "Preferred language: "+hints.Language)
	}
	if len(lines) == 0 {
		return
	}

	b.WriteString("\nSession context:\n")
	for _, line := range lines {
		b.WriteString("- " + line + "\n")
	}
}
