package rewrite

import (
	"fmt"
	"strings"

	"github.com/philokalos/promptlens/core/classify"
	"github.com/philokalos/promptlens/core/golden"
	"github.com/philokalos/promptlens/core/session"
)

var sectionHeadings = map[golden.Dimension]string{
	golden.DimensionGoal:       "Goal",
	golden.DimensionOutput:     "Expected output",
	golden.DimensionLimits:     "Constraints",
	golden.DimensionData:       "Context",
	golden.DimensionEvaluation: "Success criteria",
	golden.DimensionNext:       "Next steps",
}

// Default section bodies, used when no category-specific wording
// applies.
var defaultSectionBodies = map[golden.Dimension]string{
	golden.DimensionGoal:       "describe the single outcome you want, naming the file or module to change.",
	golden.DimensionOutput:     "respond with the changed code plus a short list of what was modified.",
	golden.DimensionLimits:     "must not change public interfaces; avoid introducing new dependencies.",
	golden.DimensionData:       "include the relevant code, versions, and any error messages.",
	golden.DimensionEvaluation: "all existing tests pass and the change does what the goal states.",
	golden.DimensionNext:       "then summarize what follow-up work, if any, remains.",
}

// Category-specific section bodies override the defaults where the
// category implies sharper wording.
var categorySectionBodies = map[classify.Category]map[golden.Dimension]string{
	classify.CategoryBugFix: {
		golden.DimensionData:       "include how to reproduce the bug, the error output, and the suspected file.",
		golden.DimensionEvaluation: "the bug no longer reproduces and existing tests pass.",
	},
	classify.CategoryTesting: {
		golden.DimensionOutput:     "respond with the new test file and the command to run it.",
		golden.DimensionEvaluation: "the new tests fail before the change and pass after it.",
	},
	classify.CategoryRefactoring: {
		golden.DimensionLimits:     "must not change observable behavior; keep the public API intact.",
		golden.DimensionEvaluation: "all existing tests pass unchanged after the refactor.",
	},
	classify.CategoryDocumentation: {
		golden.DimensionOutput:     "respond with markdown ready to commit.",
		golden.DimensionEvaluation: "a newcomer can follow the document without asking questions.",
	},
	classify.CategoryPerformance: {
		golden.DimensionData:       "include the profile or benchmark showing the bottleneck.",
		golden.DimensionEvaluation: "the benchmark improves measurably and tests pass.",
	},
	classify.CategoryDeployment: {
		golden.DimensionLimits:     "must not cause downtime; avoid irreversible migration steps.",
		golden.DimensionEvaluation: "the rollout completes and health checks pass.",
	},
	classify.CategoryDatabase: {
		golden.DimensionLimits:     "must keep the migration reversible; avoid locking large tables.",
		golden.DimensionData:       "include the current schema and the query or migration involved.",
	},
	classify.CategorySecurity: {
		golden.DimensionEvaluation: "verify the vulnerability no longer reproduces and nothing new is exposed.",
	},
}

func sectionBody(d golden.Dimension, category classify.Category) string {
	if overrides, ok := categorySectionBodies[category]; ok {
		if body, ok := overrides[d]; ok {
			return body
		}
	}
	return defaultSectionBodies[d]
}

func renderSection(d golden.Dimension, category classify.Category) string {
	return fmt.Sprintf("%s: %s", sectionHeadings[d], sectionBody(d, category))
}

// contextSection renders the Context section, folding session hints in
// when they are available.
func contextSection(category classify.Category, hints *session.Hints) string {
	lines := []string{renderSection(golden.DimensionData, category)}

	if hints != nil {
		if len(hints.TechStack) > 0 {
			lines = append(lines, "Tech stack: "+strings.Join(hints.TechStack, ", "))
		}
		if len(hints.RecentFiles) > 0 {
			lines = append(lines, "Recently touched: "+strings.Join(hints.RecentFiles, ", "))
		}
	}

	return strings.Join(lines, "\n")
}
