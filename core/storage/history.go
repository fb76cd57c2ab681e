package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/philokalos/promptlens/core/engine"
	"github.com/philokalos/promptlens/core/golden"
)

// Record is one stored analysis row. The full variant payloads are not
// kept, only the aggregates needed for trends.
type Record struct {
	ID           string       `json:"id"`
	Prompt       string       `json:"prompt"`
	Intent       string       `json:"intent"`
	Category     string       `json:"category"`
	OverallScore float64      `json:"overall_score"`
	Grade        string       `json:"grade"`
	Golden       golden.Score `json:"golden_score"`
	VariantCount int          `json:"variant_count"`
	AIProvider   string       `json:"ai_provider,omitempty"`
	AISuccess    bool         `json:"ai_success"`
	CreatedAt    time.Time    `json:"created_at"`
}

// TrendPoint is one day's aggregate in a score trend.
type TrendPoint struct {
	Day      string  `json:"day"`
	AvgScore float64 `json:"avg_score"`
	Count    int     `json:"count"`
}

// History is the durable analysis store backed by SQLite.
type History struct {
	db   *sql.DB
	path string
}

const historySchema = `
CREATE TABLE IF NOT EXISTS analyses (
	id TEXT PRIMARY KEY,
	prompt TEXT NOT NULL,
	intent TEXT NOT NULL,
	category TEXT NOT NULL,
	overall_score REAL NOT NULL,
	grade TEXT NOT NULL,
	goal_score REAL NOT NULL,
	output_score REAL NOT NULL,
	limits_score REAL NOT NULL,
	data_score REAL NOT NULL,
	evaluation_score REAL NOT NULL,
	next_score REAL NOT NULL,
	variant_count INTEGER NOT NULL,
	ai_provider TEXT,
	ai_success INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at);
CREATE INDEX IF NOT EXISTS idx_analyses_category ON analyses(category);
`

// OpenHistory opens (and migrates) the history database at path.
func OpenHistory(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &History{db: db, path: path}, nil
}

// Close closes the underlying database.
func (h *History) Close() error {
	return h.db.Close()
}

// SaveAnalysis persists the aggregates of one analysis.
func (h *History) SaveAnalysis(ctx context.Context, analysis *engine.Analysis) error {
	var provider string
	var aiSuccess bool
	if analysis.AIRewrite != nil {
		provider = analysis.AIRewrite.Provider
		aiSuccess = analysis.AIRewrite.Success
	}

	score := analysis.Evaluation.Golden
	_, err := h.db.ExecContext(ctx, `
		INSERT INTO analyses (
			id, prompt, intent, category, overall_score, grade,
			goal_score, output_score, limits_score, data_score, evaluation_score, next_score,
			variant_count, ai_provider, ai_success, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		analysis.ID,
		analysis.Prompt,
		string(analysis.Classification.Intent),
		string(analysis.Classification.TaskCategory),
		analysis.Evaluation.OverallScore,
		string(analysis.Evaluation.Grade),
		score.Goal, score.Output, score.Limits, score.Data, score.Evaluation, score.Next,
		len(analysis.Variants),
		provider,
		aiSuccess,
		analysis.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	return nil
}

// RecentAnalyses returns the newest n records.
func (h *History) RecentAnalyses(ctx context.Context, n int) ([]Record, error) {
	if n <= 0 {
		n = 10
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT id, prompt, intent, category, overall_score, grade,
			goal_score, output_score, limits_score, data_score, evaluation_score, next_score,
			variant_count, COALESCE(ai_provider, ''), ai_success, created_at
		FROM analyses
		ORDER BY created_at DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(
			&r.ID, &r.Prompt, &r.Intent, &r.Category, &r.OverallScore, &r.Grade,
			&r.Golden.Goal, &r.Golden.Output, &r.Golden.Limits,
			&r.Golden.Data, &r.Golden.Evaluation, &r.Golden.Next,
			&r.VariantCount, &r.AIProvider, &r.AISuccess, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ScoreTrend returns per-day average scores for the last days days.
func (h *History) ScoreTrend(ctx context.Context, days int) ([]TrendPoint, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	rows, err := h.db.QueryContext(ctx, `
		SELECT date(created_at), AVG(overall_score), COUNT(*)
		FROM analyses
		WHERE created_at >= ?
		GROUP BY date(created_at)
		ORDER BY date(created_at)`, since)
	if err != nil {
		return nil, fmt.Errorf("query trend: %w", err)
	}
	defer rows.Close()

	var points []TrendPoint
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Day, &p.AvgScore, &p.Count); err != nil {
			return nil, fmt.Errorf("scan trend: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// DimensionAverages returns mean per-dimension scores for the last days days.
func (h *History) DimensionAverages(ctx context.Context, days int) (golden.Score, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	var score golden.Score
	err := h.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(AVG(goal_score), 0), COALESCE(AVG(output_score), 0),
			COALESCE(AVG(limits_score), 0), COALESCE(AVG(data_score), 0),
			COALESCE(AVG(evaluation_score), 0), COALESCE(AVG(next_score), 0)
		FROM analyses
		WHERE created_at >= ?`, since).Scan(
		&score.Goal, &score.Output, &score.Limits,
		&score.Data, &score.Evaluation, &score.Next,
	)
	if err != nil {
		return golden.Score{}, fmt.Errorf("query dimension averages: %w", err)
	}
	return score, nil
}
