package spotify

import (
	"context"
	"fmt"
	"strings"

	"github.com/zmb3/spotify/v2"
)

// DefaultPlaylistLimit is how many curated playlists are fetched per mood.
const DefaultPlaylistLimit = 2

// moodPlaylists maps mood labels to curated Spotify editorial playlists.
var moodPlaylists = map[string][]string{
	"happy": {
		"spotify:playlist:37i9dQZF1DX3rxVfibe1L0", // Happy Hits
		"spotify:playlist:37i9dQZF1DX9XIFQuFvzMp", // Feel Good Pop
		"spotify:playlist:37i9dQZF1DXdPec7aLTmlC", // Dance Pop
	},
	"sad": {
		"spotify:playlist:37i9dQZF1DX7qK8ma5wgG1", // Sad Songs
		"spotify:playlist:37i9dQZF1DX3YSRoSdA634", // Melancholy
		"spotify:playlist:37i9dQZF1DX5Vy6DFOcx00", // Rainy Day
	},
	"excited": {
		"spotify:playlist:37i9dQZF1DX76Wlfdnj7AP", // Beast Mode
		"spotify:playlist:37i9dQZF1DX0XUsuxWHRQd", // RapCaviar
		"spotify:playlist:37i9dQZF1DX5Vy6DFOcx00", // Rock Classics
	},
	"calm": {
		"spotify:playlist:37i9dQZF1DX3Ogo9pFvBkY", // Ambient Relaxation
		"spotify:playlist:37i9dQZF1DX4sWSpwq3LiO", // Peaceful Piano
	},
	"stressed": {
		"spotify:playlist:37i9dQZF1DX4sWSpwq3LiO", // Stress Relief
		"spotify:playlist:37i9dQZF1DX3Ogo9pFvBkY", // Calm Down
	},
}

// PlaylistIDs returns the curated playlist IDs for a mood, defaulting to
// the happy set for unknown moods.
func PlaylistIDs(mood string) []string {
	uris, ok := moodPlaylists[strings.ToLower(mood)]
	if !ok {
		uris = moodPlaylists["happy"]
	}

	ids := make([]string, len(uris))
	for i, uri := range uris {
		ids[i] = uri[strings.LastIndex(uri, ":")+1:]
	}
	return ids
}

// MoodPlaylists fetches details for the first limit curated playlists of a mood.
// Playlists that fail to load are skipped; an error is returned only when
// nothing could be fetched.
func (c *Client) MoodPlaylists(ctx context.Context, mood string, limit int) ([]Playlist, error) {
	if limit <= 0 {
		limit = DefaultPlaylistLimit
	}

	ids := PlaylistIDs(mood)
	if len(ids) > limit {
		ids = ids[:limit]
	}

	var (
		result  []Playlist
		lastErr error
	)
	for _, id := range ids {
		p, err := c.api.GetPlaylist(ctx, spotify.ID(id))
		if err != nil {
			lastErr = fmt.Errorf("getting playlist %s: %w", id, err)
			continue
		}
		result = append(result, Playlist{
			ID:     p.ID.String(),
			Name:   p.Name,
			URL:    p.ExternalURLs["spotify"],
			Tracks: int(p.Tracks.Total),
		})
	}

	if len(result) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return result, nil
}

// SearchPlaylists searches the Spotify catalog for playlists matching query.
func (c *Client) SearchPlaylists(ctx context.Context, query string, limit int) ([]Playlist, error) {
	if limit <= 0 {
		limit = DefaultPlaylistLimit
	}

	res, err := c.api.Search(ctx, query, spotify.SearchTypePlaylist, spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("searching playlists: %w", err)
	}
	if res.Playlists == nil {
		return nil, nil
	}

	result := make([]Playlist, 0, len(res.Playlists.Playlists))
	for _, p := range res.Playlists.Playlists {
		// Spotify returns null entries for playlists removed since indexing
		if p.Name == "" {
			continue
		}
		result = append(result, Playlist{
			ID:     p.ID.String(),
			Name:   p.Name,
			URL:    p.ExternalURLs["spotify"],
			Tracks: int(p.Tracks.Total),
		})
	}
	return result, nil
}
