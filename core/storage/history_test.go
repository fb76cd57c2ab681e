package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philokalos/promptlens/core/classify"
	"github.com/philokalos/promptlens/core/engine"
	"github.com/philokalos/promptlens/core/golden"
	"github.com/philokalos/promptlens/core/orchestrator"
	"github.com/philokalos/promptlens/core/rewrite"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func sampleAnalysis(id string, score float64, createdAt time.Time) *engine.Analysis {
	return &engine.Analysis{
		ID:     id,
		Prompt: "fix the login bug",
		Classification: classify.Result{
			Intent:       classify.IntentCommand,
			TaskCategory: classify.CategoryBugFix,
		},
		Evaluation: golden.Evaluation{
			OverallScore: score,
			Grade:        golden.GradeFor(score),
			Golden: golden.Score{
				Goal: score, Output: score, Limits: score,
				Data: score, Evaluation: score, Next: score,
			},
		},
		Variants: []rewrite.Variant{
			{Kind: rewrite.KindConservative},
			{Kind: rewrite.KindBalanced},
		},
		AIRewrite: &orchestrator.Result{Success: true, Provider: "anthropic"},
		CreatedAt: createdAt,
	}
}

func TestHistory_SaveAndRecent(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, h.SaveAnalysis(ctx, sampleAnalysis("a1", 0.4, now.Add(-2*time.Hour))))
	require.NoError(t, h.SaveAnalysis(ctx, sampleAnalysis("a2", 0.6, now.Add(-time.Hour))))
	require.NoError(t, h.SaveAnalysis(ctx, sampleAnalysis("a3", 0.8, now)))

	records, err := h.RecentAnalyses(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "a3", records[0].ID)
	assert.Equal(t, "a2", records[1].ID)
	assert.Equal(t, "command", records[0].Intent)
	assert.Equal(t, "bug-fix", records[0].Category)
	assert.Equal(t, 2, records[0].VariantCount)
	assert.Equal(t, "anthropic", records[0].AIProvider)
	assert.True(t, records[0].AISuccess)
	assert.InDelta(t, 0.8, records[0].Golden.Goal, 1e-9)
}

func TestHistory_RecentDefaultsLimit(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	require.NoError(t, h.SaveAnalysis(ctx, sampleAnalysis("a1", 0.5, time.Now().UTC())))

	records, err := h.RecentAnalyses(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestHistory_DuplicateIDFails(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	analysis := sampleAnalysis("dup", 0.5, time.Now().UTC())
	require.NoError(t, h.SaveAnalysis(ctx, analysis))
	assert.Error(t, h.SaveAnalysis(ctx, analysis))
}

func TestHistory_ScoreTrend(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, h.SaveAnalysis(ctx, sampleAnalysis("a1", 0.4, now)))
	require.NoError(t, h.SaveAnalysis(ctx, sampleAnalysis("a2", 0.6, now)))
	// Outside the window, must not appear.
	require.NoError(t, h.SaveAnalysis(ctx, sampleAnalysis("old", 0.9, now.AddDate(0, 0, -30))))

	points, err := h.ScoreTrend(ctx, 7)
	require.NoError(t, err)
	require.Len(t, points, 1)

	assert.Equal(t, 2, points[0].Count)
	assert.InDelta(t, 0.5, points[0].AvgScore, 1e-9)
}

func TestHistory_DimensionAverages(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, h.SaveAnalysis(ctx, sampleAnalysis("a1", 0.2, now)))
	require.NoError(t, h.SaveAnalysis(ctx, sampleAnalysis("a2", 0.6, now)))

	avg, err := h.DimensionAverages(ctx, 7)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, avg.Goal, 1e-9)
	assert.InDelta(t, 0.4, avg.Next, 1e-9)
}

func TestHistory_DimensionAveragesEmpty(t *testing.T) {
	h := openTestHistory(t)

	avg, err := h.DimensionAverages(context.Background(), 7)
	require.NoError(t, err)
	assert.Zero(t, avg.Total())
}
