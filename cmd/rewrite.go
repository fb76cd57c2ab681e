// This file implements the rewrite command: the full pipeline including
// the model-based rewrite through the configured provider chain.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philokalos/promptlens/core/engine"
	"github.com/philokalos/promptlens/core/providers"
)

var (
	rewriteJSON     bool
	rewriteSave     bool
	rewriteEnsemble bool
	rewriteSession  string
	rewriteProject  string
	rewriteStack    []string
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite <prompt>",
	Short: "Analyze a prompt and rewrite it with the configured AI providers",
	Long: `Run the full pipeline: local analysis plus an AI rewrite through the
configured provider chain. Providers are tried in priority order; with
--ensemble the primary provider is sampled at several temperatures and
the best-scoring candidate wins.

A failed AI stage never loses the analysis - the rule-based variants are
always produced.

Examples:
  promptlens rewrite "fix the login bug"
  promptlens rewrite --ensemble "add caching to the user service"
  promptlens rewrite --json "refactor the session store" | jq '.aiRewrite'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRewrite,
}

func init() {
	rootCmd.AddCommand(rewriteCmd)

	rewriteCmd.Flags().BoolVar(&rewriteJSON, "json", false, "Output the analysis as JSON")
	rewriteCmd.Flags().BoolVar(&rewriteSave, "save", true, "Persist the analysis to history")
	rewriteCmd.Flags().BoolVar(&rewriteEnsemble, "ensemble", false, "Sample the primary provider at several temperatures")
	rewriteCmd.Flags().StringVar(&rewriteSession, "session", "", "Session ID for context caching")
	rewriteCmd.Flags().StringVar(&rewriteProject, "project", "", "Project path hint")
	rewriteCmd.Flags().StringSliceVar(&rewriteStack, "stack", nil, "Tech stack hints (comma separated)")
}

func runRewrite(cmd *cobra.Command, args []string) error {
	prompt := strings.Join(args, " ")

	manager, err := loadConfig()
	if err != nil {
		return err
	}
	cfg := manager.Get()

	registry := providers.NewRegistry()
	options := engine.Options{Ensemble: rewriteEnsemble || cfg.Engine.Ensemble}

	e, err := engine.New(registry, options)
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}
	defer e.Close()

	hints := hintsFromFlags(rewriteSession, rewriteProject, rewriteStack)
	analysis := e.AnalyzeAndRewrite(cmd.Context(), prompt, cfg.Providers, hints)

	if rewriteSave && cfg.History.Enabled {
		if err := saveToHistory(cmd, manager, analysis); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not save to history: %v\n", err)
		}
	}

	if rewriteJSON {
		return writeJSON(cmd.OutOrStdout(), analysis)
	}

	printAnalysis(cmd.OutOrStdout(), analysis)
	printAIResult(cmd, analysis)
	return nil
}

func printAIResult(cmd *cobra.Command, analysis *engine.Analysis) {
	result := analysis.AIRewrite
	if result == nil {
		return
	}

	w := cmd.OutOrStdout()
	if !result.Success {
		fmt.Fprintf(w, "%sAI rewrite failed:%s %s\n", colorRed, colorReset, result.Error)
		return
	}

	fmt.Fprintf(w, "%sAI rewrite%s (via %s", colorBold, colorReset, result.Provider)
	if result.WasFallback {
		fmt.Fprintf(w, ", fallback: %s", result.FallbackReason)
	}
	fmt.Fprintln(w, ")")

	for _, line := range strings.Split(strings.TrimSpace(result.RewrittenPrompt), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if result.Explanation != "" {
		fmt.Fprintf(w, "  %s%s%s\n", colorGray, result.Explanation, colorReset)
	}
}
