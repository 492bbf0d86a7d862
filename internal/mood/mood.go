// Package mood classifies a listener's mood into a music profile.
package mood

import (
	"context"
	"errors"
	"strings"
)

// Sentinel errors.
var (
	// ErrEmptyMood is returned when no mood text or selection was provided.
	ErrEmptyMood = errors.New("no mood provided")

	// ErrUnknownMood is returned when a selected mood has no profile.
	ErrUnknownMood = errors.New("invalid mood selection")
)

// Energy levels.
const (
	EnergyLow    = "low"
	EnergyMedium = "medium"
	EnergyHigh   = "high"
)

// Tempo preferences.
const (
	TempoSlow   = "slow"
	TempoMedium = "medium"
	TempoFast   = "fast"
)

// Source indicates which strategy produced an analysis.
type Source string

const (
	// SourceLLM means a language model classified the text.
	SourceLLM Source = "llm"
	// SourceKeyword means keyword matching classified the text.
	SourceKeyword Source = "keyword"
	// SourceTable means the mood was selected directly from the profile table.
	SourceTable Source = "table"
	// SourceFallback means the neutral profile was used because no classifier was available.
	SourceFallback Source = "fallback"
	// SourceCache means a previously stored analysis was reused.
	SourceCache Source = "cache"
)

// Analysis describes a classified mood and the musical traits that go with it.
type Analysis struct {
	PrimaryMood      string   `json:"primary_mood"`
	SecondaryMood    string   `json:"secondary_mood"`
	Description      string   `json:"mood_description"`
	EnergyLevel      string   `json:"energy_level"`
	TempoPreference  string   `json:"tempo_preference"`
	GenreSuggestions []string `json:"genre_suggestions"`
	Keywords         []string `json:"mood_keywords"`
}

// Analyzer classifies free text into an Analysis.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (Analysis, Source, error)
}

// Clone returns a copy of a that shares no slices with it.
func (a Analysis) Clone() Analysis {
	a.GenreSuggestions = append([]string(nil), a.GenreSuggestions...)
	a.Keywords = append([]string(nil), a.Keywords...)
	return a
}

// Normalize fills missing fields with defaults and lowercases the
// energy and tempo levels. The primary mood keeps its case.
// Slices are never nil after normalization.
func Normalize(a Analysis) Analysis {
	a = a.Clone()

	a.PrimaryMood = strings.TrimSpace(a.PrimaryMood)
	if a.PrimaryMood == "" {
		a.PrimaryMood = "neutral"
	}
	a.SecondaryMood = strings.TrimSpace(a.SecondaryMood)
	a.Description = strings.TrimSpace(a.Description)

	a.EnergyLevel = strings.ToLower(strings.TrimSpace(a.EnergyLevel))
	if a.EnergyLevel == "" {
		a.EnergyLevel = EnergyMedium
	}
	a.TempoPreference = strings.ToLower(strings.TrimSpace(a.TempoPreference))
	if a.TempoPreference == "" {
		a.TempoPreference = TempoMedium
	}

	a.GenreSuggestions = compact(a.GenreSuggestions)
	a.Keywords = compact(a.Keywords)
	return a
}

// compact trims entries and drops blanks.
func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
