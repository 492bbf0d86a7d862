package mood

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordClassifier_Classify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "direct label", input: "I am so happy today", want: Happy},
		{name: "direct label uppercase", input: "SAD and tired", want: Sad},
		{name: "label order wins", input: "calm but stressed", want: Calm},
		{name: "label substring of longer word", input: "I'm unhappy", want: Happy},
		{name: "related happy word", input: "what a wonderful day", want: Happy},
		{name: "related sad word", input: "feeling gloomy", want: Sad},
		{name: "related excited phrase", input: "totally fired up", want: Excited},
		{name: "related calm word", input: "pretty mellow evening", want: Calm},
		{name: "related stressed word", input: "so nervous about tomorrow", want: Stressed},
		{name: "happy group checked before sad", input: "good but awful", want: Happy},
		{name: "no match defaults to happy", input: "purple elephants", want: Happy},
		{name: "empty defaults to happy", input: "", want: Happy},
	}

	var c KeywordClassifier
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.input)
			assert.Equal(t, tt.want, got.PrimaryMood)
		})
	}
}

func TestKeywordClassifier_ReturnsFullProfile(t *testing.T) {
	got := KeywordClassifier{}.Classify("so stressed out")

	assert.Equal(t, Analysis{
		PrimaryMood:      "stressed",
		SecondaryMood:    "anxious",
		Description:      "Feeling tense and overwhelmed",
		EnergyLevel:      "medium",
		TempoPreference:  "medium",
		GenreSuggestions: []string{"chill", "ambient", "piano", "acoustic"},
		Keywords:         []string{"soothing", "calming", "gentle", "therapeutic"},
	}, got)
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		want    string
		wantErr error
	}{
		{name: "known label", label: "excited", want: Excited},
		{name: "mixed case and spaces", label: "  Calm ", want: Calm},
		{name: "empty", label: "   ", wantErr: ErrEmptyMood},
		{name: "unknown", label: "bored", wantErr: ErrUnknownMood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lookup(tt.label)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got error %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.PrimaryMood)
		})
	}
}

func TestLookup_ReturnsCopy(t *testing.T) {
	a, err := Lookup(Happy)
	require.NoError(t, err)
	a.GenreSuggestions[0] = "mutated"

	b, err := Lookup(Happy)
	require.NoError(t, err)
	assert.Equal(t, "pop", b.GenreSuggestions[0])
}

func TestLabels(t *testing.T) {
	assert.Equal(t, []string{"happy", "sad", "excited", "calm", "stressed"}, Labels())

	profiles := Profiles()
	for _, l := range Labels() {
		assert.Contains(t, profiles, l)
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(Analysis{
		PrimaryMood:      "  Hopeful ",
		EnergyLevel:      "HIGH",
		GenreSuggestions: []string{" indie ", "", "folk"},
	})

	assert.Equal(t, "Hopeful", got.PrimaryMood)
	assert.Equal(t, "high", got.EnergyLevel)
	assert.Equal(t, "medium", got.TempoPreference)
	assert.Equal(t, []string{"indie", "folk"}, got.GenreSuggestions)
	assert.NotNil(t, got.Keywords)
	assert.Empty(t, got.Keywords)
}

func TestNormalize_EmptyDefaultsToNeutral(t *testing.T) {
	got := Normalize(Analysis{})
	assert.Equal(t, "neutral", got.PrimaryMood)
	assert.Equal(t, "medium", got.EnergyLevel)
}

func TestAnalyzers(t *testing.T) {
	ctx := context.Background()

	t.Run("keyword", func(t *testing.T) {
		a, src, err := NewKeywordAnalyzer().Analyze(ctx, "chill vibes only")
		require.NoError(t, err)
		assert.Equal(t, SourceKeyword, src)
		assert.Equal(t, Calm, a.PrimaryMood)
	})

	t.Run("keyword rejects blank input", func(t *testing.T) {
		_, _, err := NewKeywordAnalyzer().Analyze(ctx, "  ")
		assert.ErrorIs(t, err, ErrEmptyMood)
	})

	t.Run("table", func(t *testing.T) {
		a, src, err := NewTableAnalyzer().Analyze(ctx, "sad")
		require.NoError(t, err)
		assert.Equal(t, SourceTable, src)
		assert.Equal(t, "melancholic", a.SecondaryMood)
	})

	t.Run("table unknown", func(t *testing.T) {
		_, _, err := NewTableAnalyzer().Analyze(ctx, "hungry")
		assert.ErrorIs(t, err, ErrUnknownMood)
	})
}

func TestFallback(t *testing.T) {
	f := Fallback()
	assert.Equal(t, "neutral", f.PrimaryMood)
	assert.Equal(t, []string{"pop", "indie", "ambient"}, f.GenreSuggestions)

	f.Keywords[0] = "changed"
	assert.Equal(t, "balanced", Fallback().Keywords[0])
}
