// Package history records mood analyses and reuses recent ones.
package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/justestif/go-mood-to-music/internal/mood"
)

// ErrNotFound is returned by Lookup when no usable entry exists.
var ErrNotFound = errors.New("history entry not found")

// Entry is one classified mood request.
type Entry struct {
	ID        uuid.UUID     `json:"id"`
	Input     string        `json:"input"`
	Source    mood.Source   `json:"source"`
	Analysis  mood.Analysis `json:"analysis"`
	CreatedAt time.Time     `json:"created_at"`
}

// MoodCount is how often a primary mood was seen.
type MoodCount struct {
	Mood  string `json:"mood"`
	Count int    `json:"count"`
}

// Store persists entries.
type Store interface {
	// Save stores an entry. A zero ID or CreatedAt is filled in.
	Save(ctx context.Context, e *Entry) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)
	// CountByMood returns counts per primary mood, most frequent first.
	CountByMood(ctx context.Context) ([]MoodCount, error)
	// Lookup returns the newest entry for input no older than maxAge.
	// When sources are given, only entries produced by one of them match.
	Lookup(ctx context.Context, input string, maxAge time.Duration, sources ...mood.Source) (*Entry, error)
}

// Key normalizes free text so equivalent inputs share cache entries.
func Key(input string) string {
	return strings.Join(strings.Fields(strings.ToLower(input)), " ")
}

func prepare(e *Entry, now time.Time) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
}
