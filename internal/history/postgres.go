package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/justestif/go-mood-to-music/internal/db"
	"github.com/justestif/go-mood-to-music/internal/mood"
)

// DBStore persists entries in PostgreSQL.
type DBStore struct {
	repo *db.AnalysisRepository
	now  func() time.Time
}

// NewDBStore creates a store backed by the analyses table.
func NewDBStore(database *db.DB) *DBStore {
	return &DBStore{repo: database.Analyses(), now: time.Now}
}

// Save implements Store.
func (s *DBStore) Save(ctx context.Context, e *Entry) error {
	prepare(e, s.now())
	return s.repo.Insert(ctx, &db.AnalysisRecord{
		ID:        e.ID,
		InputText: e.Input,
		InputKey:  Key(e.Input),
		Source:    string(e.Source),
		Analysis:  e.Analysis,
		CreatedAt: e.CreatedAt,
	})
}

// Recent implements Store.
func (s *DBStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	records, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(records))
	for i := range records {
		entries[i] = fromRecord(&records[i])
	}
	return entries, nil
}

// CountByMood implements Store.
func (s *DBStore) CountByMood(ctx context.Context) ([]MoodCount, error) {
	counts, err := s.repo.CountByMood(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]MoodCount, len(counts))
	for i, c := range counts {
		result[i] = MoodCount{Mood: c.Mood, Count: c.Count}
	}
	return result, nil
}

// Lookup implements Store.
func (s *DBStore) Lookup(ctx context.Context, input string, maxAge time.Duration, sources ...mood.Source) (*Entry, error) {
	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = string(src)
	}
	rec, err := s.repo.FindByInput(ctx, Key(input), s.now().Add(-maxAge), names)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up analysis: %w", err)
	}
	e := fromRecord(rec)
	return &e, nil
}

// Prune removes entries older than maxAge.
func (s *DBStore) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	return s.repo.DeleteOlderThan(ctx, s.now().Add(-maxAge))
}

func fromRecord(r *db.AnalysisRecord) Entry {
	return Entry{
		ID:        r.ID,
		Input:     r.InputText,
		Source:    mood.Source(r.Source),
		Analysis:  r.Analysis,
		CreatedAt: r.CreatedAt,
	}
}

var _ Store = (*DBStore)(nil)
