package mood

import (
	"fmt"
	"strings"
)

// Mood labels available for direct selection.
const (
	Happy    = "happy"
	Sad      = "sad"
	Excited  = "excited"
	Calm     = "calm"
	Stressed = "stressed"
)

// labels is the table order. Keyword matching walks it in this order.
var labels = []string{Happy, Sad, Excited, Calm, Stressed}

var profiles = map[string]Analysis{
	Happy: {
		PrimaryMood:      Happy,
		SecondaryMood:    "joyful",
		Description:      "Feeling cheerful and upbeat",
		EnergyLevel:      EnergyHigh,
		TempoPreference:  TempoFast,
		GenreSuggestions: []string{"pop", "dance", "reggae", "disco"},
		Keywords:         []string{"upbeat", "energetic", "cheerful", "positive"},
	},
	Sad: {
		PrimaryMood:      Sad,
		SecondaryMood:    "melancholic",
		Description:      "Feeling down and reflective",
		EnergyLevel:      EnergyLow,
		TempoPreference:  TempoSlow,
		GenreSuggestions: []string{"blues", "jazz", "indie", "folk"},
		Keywords:         []string{"melancholic", "reflective", "calm", "peaceful"},
	},
	Excited: {
		PrimaryMood:      Excited,
		SecondaryMood:    "energetic",
		Description:      "Feeling pumped and energetic",
		EnergyLevel:      EnergyHigh,
		TempoPreference:  TempoFast,
		GenreSuggestions: []string{"rock", "electronic", "hip-hop", "metal"},
		Keywords:         []string{"energetic", "powerful", "intense", "dynamic"},
	},
	Calm: {
		PrimaryMood:      Calm,
		SecondaryMood:    "peaceful",
		Description:      "Feeling relaxed and at ease",
		EnergyLevel:      EnergyLow,
		TempoPreference:  TempoSlow,
		GenreSuggestions: []string{"ambient", "classical", "lofi", "nature"},
		Keywords:         []string{"relaxing", "peaceful", "soothing", "tranquil"},
	},
	Stressed: {
		PrimaryMood:      Stressed,
		SecondaryMood:    "anxious",
		Description:      "Feeling tense and overwhelmed",
		EnergyLevel:      EnergyMedium,
		TempoPreference:  TempoMedium,
		GenreSuggestions: []string{"chill", "ambient", "piano", "acoustic"},
		Keywords:         []string{"soothing", "calming", "gentle", "therapeutic"},
	},
}

var fallback = Analysis{
	PrimaryMood:      "neutral",
	SecondaryMood:    "calm",
	Description:      "Feeling balanced and content",
	EnergyLevel:      EnergyMedium,
	TempoPreference:  TempoMedium,
	GenreSuggestions: []string{"pop", "indie", "ambient"},
	Keywords:         []string{"balanced", "content", "peaceful"},
}

// Labels returns the selectable mood labels in table order.
func Labels() []string {
	return append([]string(nil), labels...)
}

// Profiles returns a copy of every selectable profile keyed by label.
func Profiles() map[string]Analysis {
	out := make(map[string]Analysis, len(profiles))
	for k, v := range profiles {
		out[k] = v.Clone()
	}
	return out
}

// Fallback returns the neutral profile used when no classifier is available.
func Fallback() Analysis {
	return fallback.Clone()
}

// Lookup returns the profile for a selected mood label.
func Lookup(label string) (Analysis, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return Analysis{}, ErrEmptyMood
	}
	p, ok := profiles[label]
	if !ok {
		return Analysis{}, fmt.Errorf("%w: %q", ErrUnknownMood, label)
	}
	return p.Clone(), nil
}

// mustProfile returns a table profile. It is only called with known labels.
func mustProfile(label string) Analysis {
	return profiles[label].Clone()
}
