// This file implements the history command: recent analyses and score
// trends from the local SQLite store.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philokalos/promptlens/core/golden"
	"github.com/philokalos/promptlens/core/storage"
)

var (
	historyLimit int
	historyTrend int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent analyses and score trends",
	Long: `Show recently analyzed prompts with their grades, or aggregate the
score trend over a window of days.

Examples:
  promptlens history
  promptlens history --limit 20
  promptlens history --trend 14`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of recent analyses to show")
	historyCmd.Flags().IntVar(&historyTrend, "trend", 0, "Show the per-day score trend over this many days")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	manager, err := loadConfig()
	if err != nil {
		return err
	}

	history, err := storage.OpenHistory(manager.HistoryPath())
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer history.Close()

	if historyTrend > 0 {
		return showTrend(cmd, history)
	}
	return showRecent(cmd, history)
}

func showRecent(cmd *cobra.Command, history *storage.History) error {
	records, err := history.RecentAnalyses(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if historyJSON {
		return writeJSON(cmd.OutOrStdout(), records)
	}

	w := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(w, "No analyses recorded yet.")
		return nil
	}

	for _, r := range records {
		prompt := r.Prompt
		if len([]rune(prompt)) > 60 {
			prompt = string([]rune(prompt)[:57]) + "..."
		}
		fmt.Fprintf(w, "%s  %s%s%s %.2f  %-14s %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			gradeColor(r.Grade), r.Grade, colorReset,
			r.OverallScore, r.Category, prompt)
	}
	return nil
}

func showTrend(cmd *cobra.Command, history *storage.History) error {
	points, err := history.ScoreTrend(cmd.Context(), historyTrend)
	if err != nil {
		return err
	}

	averages, err := history.DimensionAverages(cmd.Context(), historyTrend)
	if err != nil {
		return err
	}

	if historyJSON {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"trend":              points,
			"dimension_averages": averages,
		})
	}

	w := cmd.OutOrStdout()
	if len(points) == 0 {
		fmt.Fprintf(w, "No analyses in the last %d days.\n", historyTrend)
		return nil
	}

	fmt.Fprintf(w, "%sScore trend (last %d days)%s\n", colorBold, historyTrend, colorReset)
	for _, p := range points {
		fmt.Fprintf(w, "  %s  %s %.2f  (%d prompts)\n", p.Day, scoreBar(p.AvgScore), p.AvgScore, p.Count)
	}

	fmt.Fprintf(w, "\n%sDimension averages%s\n", colorBold, colorReset)
	for _, dim := range golden.Dimensions() {
		fmt.Fprintf(w, "  %-12s %s %.2f\n", dim, scoreBar(averages.Get(dim)), averages.Get(dim))
	}
	return nil
}

func gradeColor(grade string) string {
	switch grade {
	case "A", "B":
		return colorGreen
	case "C":
		return colorYellow
	default:
		return colorRed
	}
}
