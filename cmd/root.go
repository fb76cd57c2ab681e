package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "promptlens",
	Short: "PromptLens - prompt quality analysis and adaptive rewriting",
	Long: `PromptLens analyzes developer prompts, scores them against the GOLDEN
quality rubric, and produces rewrite suggestions - rule-based locally,
and model-based when an AI provider is configured.`,
}

func Execute() error {
	return rootCmd.Execute()
}
