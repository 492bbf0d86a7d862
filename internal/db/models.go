package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/justestif/go-mood-to-music/internal/mood"
)

// AnalysisRecord is a stored mood classification.
type AnalysisRecord struct {
	ID        uuid.UUID
	InputText string
	InputKey  string // normalized input used for cache lookups
	Source    string // mood.Source that produced the analysis
	Analysis  mood.Analysis
	CreatedAt time.Time
}

// MoodCount is the number of analyses per primary mood.
type MoodCount struct {
	Mood  string
	Count int
}

// TagArtist is a cached Last.fm artist for a tag.
type TagArtist struct {
	Tag       string
	Rank      int
	Name      string
	URL       string
	FetchedAt time.Time
}
