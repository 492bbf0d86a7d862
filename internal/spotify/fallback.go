package spotify

import "strings"

var fallbacks = map[string]Fallback{
	"happy": {
		Description:   "Upbeat and cheerful music",
		Playlists:     []string{"Happy Hits", "Feel Good Vibes", "Summer Party"},
		Artists:       []string{"Pharrell Williams", "Bruno Mars", "Daft Punk"},
		SearchQueries: []string{"happy music playlist", "upbeat songs", "feel good music"},
	},
	"sad": {
		Description:   "Melancholic and reflective music",
		Playlists:     []string{"Sad Songs", "Melancholy Vibes", "Rainy Day"},
		Artists:       []string{"Adele", "Ed Sheeran", "Lana Del Rey"},
		SearchQueries: []string{"sad songs playlist", "melancholy music", "heartbreak songs"},
	},
	"excited": {
		Description:   "High energy and powerful music",
		Playlists:     []string{"Workout Mix", "Party Anthems", "Rock Classics"},
		Artists:       []string{"Imagine Dragons", "The Weeknd", "Eminem"},
		SearchQueries: []string{"workout music", "party songs", "energy boost"},
	},
	"calm": {
		Description:   "Relaxing and peaceful music",
		Playlists:     []string{"Study Music", "Sleep Sounds", "Meditation"},
		Artists:       []string{"Ludovico Einaudi", "Max Richter", "Chillhop Music"},
		SearchQueries: []string{"study music", "sleep sounds", "meditation music"},
	},
	"stressed": {
		Description:   "Soothing and therapeutic music",
		Playlists:     []string{"Stress Relief", "Calm Down", "Therapeutic Sounds"},
		Artists:       []string{"Ólafur Arnalds", "Nils Frahm", "Sigur Rós"},
		SearchQueries: []string{"stress relief music", "calm down songs", "therapeutic sounds"},
	},
}

// FallbackRecommendations returns canned suggestions for a mood.
// Unknown moods get the happy set.
func FallbackRecommendations(mood string) Fallback {
	f, ok := fallbacks[strings.ToLower(strings.TrimSpace(mood))]
	if !ok {
		f = fallbacks["happy"]
	}
	return Fallback{
		Description:   f.Description,
		Playlists:     append([]string(nil), f.Playlists...),
		Artists:       append([]string(nil), f.Artists...),
		SearchQueries: append([]string(nil), f.SearchQueries...),
	}
}
