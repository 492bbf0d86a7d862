// Package playlist turns a mood analysis into playlist titles and search queries.
package playlist

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/justestif/go-mood-to-music/internal/mood"
)

const (
	maxTitles   = 8
	maxQueries  = 6
	maxGenres   = 2
	maxKeywords = 2
)

// Platforms lists the streaming services recommendations are aimed at.
var Platforms = []string{"YouTube Music", "Spotify", "Apple Music"}

// SpotifyPlaylist is a concrete playlist found on Spotify.
type SpotifyPlaylist struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Tracks int    `json:"tracks"`
}

// Recommendations holds everything suggested for a mood.
type Recommendations struct {
	PlaylistTitles       []string          `json:"playlist_titles"`
	SearchQueries        []string          `json:"search_queries"`
	RecommendedPlatforms []string          `json:"recommended_platforms"`
	SpotifyPlaylists     []SpotifyPlaylist `json:"spotify_playlists,omitempty"`
	Artists              []string          `json:"artists,omitempty"`
}

// Recommend builds titles and search queries for an analysis.
func Recommend(a mood.Analysis) Recommendations {
	a = mood.Normalize(a)
	return Recommendations{
		PlaylistTitles:       Titles(a.PrimaryMood, a.EnergyLevel, a.GenreSuggestions, a.Keywords),
		SearchQueries:        SearchQueries(a.PrimaryMood, a.GenreSuggestions, a.Keywords),
		RecommendedPlatforms: append([]string(nil), Platforms...),
	}
}

// Titles generates up to eight unique playlist titles.
func Titles(primaryMood, energyLevel string, genres, keywords []string) []string {
	title := cases.Title(language.English)
	m := title.String(primaryMood)
	e := title.String(energyLevel)

	all := []string{
		m + " Vibes",
		"Feeling " + m,
		m + " Mood",
		m + " Energy",
		fmt.Sprintf("%s Energy %s", e, m),
		fmt.Sprintf("%s %s Vibes", m, e),
	}

	for _, g := range head(genres, maxGenres) {
		g = title.String(g)
		all = append(all,
			fmt.Sprintf("%s %s", m, g),
			fmt.Sprintf("%s for %s Mood", g, m),
		)
	}

	for _, k := range head(keywords, maxKeywords) {
		all = append(all, fmt.Sprintf("%s %s", title.String(k), m))
	}

	return head(unique(all), maxTitles)
}

// SearchQueries generates up to six search strings for streaming platforms.
func SearchQueries(primaryMood string, genres, keywords []string) []string {
	queries := []string{
		primaryMood + " music playlist",
		primaryMood + " songs",
	}

	for _, g := range head(genres, maxGenres) {
		queries = append(queries,
			fmt.Sprintf("%s %s playlist", g, primaryMood),
			fmt.Sprintf("%s %s music", primaryMood, g),
		)
	}

	for _, k := range head(keywords, maxKeywords) {
		queries = append(queries, fmt.Sprintf("%s %s music", k, primaryMood))
	}

	return head(queries, maxQueries)
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// unique drops repeated strings, keeping the first occurrence.
func unique(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
