package trends

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justestif/go-mood-to-music/internal/history"
	"github.com/justestif/go-mood-to-music/internal/mood"
)

func makeEntries(t *testing.T, start time.Time, labels ...string) []history.Entry {
	t.Helper()
	entries := make([]history.Entry, len(labels))
	for i, label := range labels {
		a, err := mood.Lookup(label)
		require.NoError(t, err)
		entries[i] = history.Entry{
			Input:     label,
			Source:    mood.SourceTable,
			Analysis:  a,
			CreatedAt: start.Add(time.Duration(i) * time.Hour),
		}
	}
	return entries
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		centroid Centroid
		want     string
	}{
		{name: "high energy high valence", centroid: Centroid{Energy: 0.8, Valence: 0.7, Tempo: 0.5}, want: "Upbeat Party"},
		{name: "high energy low valence", centroid: Centroid{Energy: 0.8, Valence: 0.3, Tempo: 0.5}, want: "Intense & Dark"},
		{name: "low energy high valence", centroid: Centroid{Energy: 0.4, Valence: 0.7, Tempo: 0.5}, want: "Chill & Happy"},
		{name: "low energy low valence", centroid: Centroid{Energy: 0.3, Valence: 0.3, Tempo: 0.5}, want: "Reflective & Melancholy"},
		{name: "fast tempo adds modifier", centroid: Centroid{Energy: 0.8, Valence: 0.9, Tempo: 0.8}, want: "Upbeat Party (Fast)"},
		{name: "slow tempo adds modifier", centroid: Centroid{Energy: 0.2, Valence: 0.1, Tempo: 0.2}, want: "Reflective & Melancholy (Slow)"},
		{name: "boundary energy exactly 0.6 is low", centroid: Centroid{Energy: 0.6, Valence: 0.7, Tempo: 0.5}, want: "Chill & Happy"},
		{name: "boundary valence exactly 0.5 is low", centroid: Centroid{Energy: 0.8, Valence: 0.5, Tempo: 0.5}, want: "Intense & Dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Categorize(tt.centroid)
			if got.Name != tt.want {
				t.Errorf("Categorize() = %q, want %q", got.Name, tt.want)
			}
			if got.Description == "" {
				t.Error("Description should not be empty")
			}
		})
	}
}

func TestCoordinates(t *testing.T) {
	happy, err := mood.Lookup("happy")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.8, 0.9, 0.8}, []float64(Coordinates(happy)))

	sad, err := mood.Lookup("sad")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.2, 0.1, 0.2}, []float64(Coordinates(sad)))

	assert.Equal(t, []float64{0.5, 0.5, 0.5}, []float64(Coordinates(mood.Fallback())))
}

func TestDetect_TooFewEntries(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := Detect(makeEntries(t, start, "happy", "sad"), Config{NumClusters: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Total)
	assert.NotNil(t, got.Clusters)
	assert.Empty(t, got.Clusters)

	empty, err := Detect(nil, DefaultConfig())
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Empty(t, empty.Clusters)
}

func TestDetect_SeparatesMoods(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := makeEntries(t, start, "sad", "excited", "sad", "excited", "sad", "excited")

	got, err := Detect(entries, Config{NumClusters: 2})
	require.NoError(t, err)
	require.Len(t, got.Clusters, 2)

	total := 0
	for _, c := range got.Clusters {
		total += c.Size
		assert.Equal(t, 3, c.Size)
		assert.Len(t, c.Moods, 1, "each cluster holds one mood")
		assert.False(t, c.From.After(c.To))
	}
	assert.Equal(t, 6, total)

	names := []string{got.Clusters[0].Name, got.Clusters[1].Name}
	assert.ElementsMatch(t, []string{"Upbeat Party (Fast)", "Reflective & Melancholy (Slow)"}, names)
}

func TestDetect_MinClusterSize(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := makeEntries(t, start, "sad", "sad", "sad", "sad", "happy")

	got, err := Detect(entries, Config{NumClusters: 2, MinClusterSize: 3})
	require.NoError(t, err)
	require.Len(t, got.Clusters, 1)
	assert.Equal(t, "sad", got.Clusters[0].DominantMood)
	assert.Equal(t, 5, got.Total)
}
