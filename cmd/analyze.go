// Package cmd provides the PromptLens command-line interface.
// This file implements the analyze command: the local pipeline only,
// classification plus GOLDEN scoring plus rule-based variants.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philokalos/promptlens/core/config"
	"github.com/philokalos/promptlens/core/engine"
	"github.com/philokalos/promptlens/core/providers"
	"github.com/philokalos/promptlens/core/rewrite"
	"github.com/philokalos/promptlens/core/session"
	"github.com/philokalos/promptlens/core/storage"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

var (
	analyzeJSON    bool
	analyzeSave    bool
	analyzeSession string
	analyzeProject string
	analyzeStack   []string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <prompt>",
	Short: "Analyze prompt quality without calling any provider",
	Long: `Analyze a prompt locally: classify its intent and task category,
score it against the GOLDEN rubric, and generate rule-based rewrite
variants.

Examples:
  promptlens analyze "fix the login bug"
  promptlens analyze --json "add caching to the user service" | jq '.evaluation'
  promptlens analyze --stack go,postgres "refactor the session store"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Output the analysis as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", true, "Persist the analysis to history")
	analyzeCmd.Flags().StringVar(&analyzeSession, "session", "", "Session ID for context caching")
	analyzeCmd.Flags().StringVar(&analyzeProject, "project", "", "Project path hint")
	analyzeCmd.Flags().StringSliceVar(&analyzeStack, "stack", nil, "Tech stack hints (comma separated)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	prompt := strings.Join(args, " ")

	manager, err := loadConfig()
	if err != nil {
		return err
	}

	e, err := engine.New(providers.NewRegistry(), engine.Options{})
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}
	defer e.Close()

	analysis := e.Analyze(prompt, hintsFromFlags(analyzeSession, analyzeProject, analyzeStack))

	if analyzeSave && manager.Get().History.Enabled {
		if err := saveToHistory(cmd, manager, analysis); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not save to history: %v\n", err)
		}
	}

	if analyzeJSON {
		return writeJSON(cmd.OutOrStdout(), analysis)
	}
	printAnalysis(cmd.OutOrStdout(), analysis)
	return nil
}

func loadConfig() (*config.Manager, error) {
	manager := config.NewManager(storage.ResolveDirs())
	if err := manager.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return manager, nil
}

func hintsFromFlags(sessionID, project string, stack []string) *session.Hints {
	if sessionID == "" && project == "" && len(stack) == 0 {
		return nil
	}
	return &session.Hints{
		SessionID:   sessionID,
		ProjectPath: project,
		TechStack:   stack,
	}
}

func saveToHistory(cmd *cobra.Command, manager *config.Manager, analysis *engine.Analysis) error {
	history, err := storage.OpenHistory(manager.HistoryPath())
	if err != nil {
		return err
	}
	defer history.Close()
	return history.SaveAnalysis(cmd.Context(), analysis)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printAnalysis(w io.Writer, analysis *engine.Analysis) {
	eval := analysis.Evaluation

	fmt.Fprintf(w, "%sGrade %s%s  (%.2f overall)\n",
		colorBold, eval.Grade, colorReset, eval.OverallScore)
	fmt.Fprintf(w, "%sIntent:%s %s (%.0f%%)   %sCategory:%s %s (%.0f%%)\n",
		colorCyan, colorReset,
		analysis.Classification.Intent, analysis.Classification.IntentConfidence*100,
		colorCyan, colorReset,
		analysis.Classification.TaskCategory, analysis.Classification.CategoryConfidence*100)

	fmt.Fprintf(w, "\n%sDimensions%s\n", colorBold, colorReset)
	for _, g := range eval.Guidelines {
		fmt.Fprintf(w, "  %-12s %s %.2f\n", g.Dimension, scoreBar(g.Score), g.Score)
	}

	if len(eval.AntiPatterns) > 0 {
		fmt.Fprintf(w, "\n%sIssues%s\n", colorBold, colorReset)
		for _, ap := range eval.AntiPatterns {
			fmt.Fprintf(w, "  %s[%s]%s %s\n", severityColor(string(ap.Severity)), ap.Severity, colorReset, ap.Description)
		}
	}

	if len(analysis.Variants) > 0 {
		fmt.Fprintf(w, "\n%sVariants%s\n", colorBold, colorReset)
		for _, v := range analysis.Variants {
			printVariant(w, v)
		}
	}
}

func printVariant(w io.Writer, v rewrite.Variant) {
	if v.NeedsSetup {
		fmt.Fprintf(w, "  %s%-13s%s configure an AI provider to unlock model-based rewrites\n",
			colorGray, v.Kind, colorReset)
		return
	}

	fmt.Fprintf(w, "  %s%-13s%s confidence %.2f\n", colorGreen, v.Kind, colorReset, v.Confidence)
	for _, line := range strings.Split(strings.TrimSpace(v.RewrittenPrompt), "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
	if len(v.KeyChanges) > 0 {
		fmt.Fprintf(w, "    %schanges: %s%s\n", colorGray, strings.Join(v.KeyChanges, "; "), colorReset)
	}
	fmt.Fprintln(w)
}

func scoreBar(score float64) string {
	const width = 10
	filled := int(score * width)
	if filled > width {
		filled = width
	}
	color := colorGreen
	switch {
	case score < 0.35:
		color = colorRed
	case score < 0.65:
		color = colorYellow
	}
	return color + strings.Repeat("█", filled) + colorGray + strings.Repeat("░", width-filled) + colorReset
}

func severityColor(severity string) string {
	switch severity {
	case "high":
		return colorRed
	case "medium":
		return colorYellow
	default:
		return colorGray
	}
}
