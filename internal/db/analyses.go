package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalysisRepository handles mood analysis database operations.
type AnalysisRepository struct {
	pool *pgxpool.Pool
}

// Insert stores an analysis record.
func (r *AnalysisRepository) Insert(ctx context.Context, rec *AnalysisRecord) error {
	payload, err := json.Marshal(rec.Analysis)
	if err != nil {
		return fmt.Errorf("encoding analysis: %w", err)
	}

	query := `
		INSERT INTO mood_analyses (id, input_text, input_key, source, primary_mood, energy_level, tempo_preference, analysis, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.pool.Exec(ctx, query,
		rec.ID,
		rec.InputText,
		rec.InputKey,
		rec.Source,
		rec.Analysis.PrimaryMood,
		rec.Analysis.EnergyLevel,
		rec.Analysis.TempoPreference,
		payload,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting analysis: %w", err)
	}
	return nil
}

// Recent returns the most recent analyses, newest first.
func (r *AnalysisRepository) Recent(ctx context.Context, limit int) ([]AnalysisRecord, error) {
	query := `
		SELECT id, input_text, input_key, source, analysis, created_at
		FROM mood_analyses
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	var records []AnalysisRecord
	for rows.Next() {
		rec, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// CountByMood returns the number of analyses per primary mood, most frequent first.
func (r *AnalysisRepository) CountByMood(ctx context.Context) ([]MoodCount, error) {
	query := `
		SELECT primary_mood, COUNT(*)
		FROM mood_analyses
		GROUP BY primary_mood
		ORDER BY COUNT(*) DESC, primary_mood
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("counting moods: %w", err)
	}
	defer rows.Close()

	var counts []MoodCount
	for rows.Next() {
		var c MoodCount
		if err := rows.Scan(&c.Mood, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning mood count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// FindByInput returns the newest analysis for an input key created after since.
// A non-empty sources list restricts the match to those sources.
// Returns ErrNotFound if there is none.
func (r *AnalysisRepository) FindByInput(ctx context.Context, inputKey string, since time.Time, sources []string) (*AnalysisRecord, error) {
	query := `
		SELECT id, input_text, input_key, source, analysis, created_at
		FROM mood_analyses
		WHERE input_key = $1 AND created_at > $2
		  AND (cardinality($3::text[]) = 0 OR source = ANY($3))
		ORDER BY created_at DESC
		LIMIT 1
	`
	if sources == nil {
		sources = []string{}
	}
	rec, err := scanAnalysis(r.pool.QueryRow(ctx, query, inputKey, since, sources))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteOlderThan removes analyses created before t and returns how many were removed.
func (r *AnalysisRepository) DeleteOlderThan(ctx context.Context, t time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM mood_analyses WHERE created_at < $1`, t)
	if err != nil {
		return 0, fmt.Errorf("deleting analyses: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanAnalysis(row pgx.Row) (*AnalysisRecord, error) {
	var (
		rec     AnalysisRecord
		payload []byte
	)
	if err := row.Scan(
		&rec.ID,
		&rec.InputText,
		&rec.InputKey,
		&rec.Source,
		&payload,
		&rec.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning analysis: %w", err)
	}
	if err := json.Unmarshal(payload, &rec.Analysis); err != nil {
		return nil, fmt.Errorf("decoding analysis %s: %w", rec.ID, err)
	}
	return &rec, nil
}
