package spotify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zmb3/spotify/v2"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(spotify.New(server.Client(), spotify.WithBaseURL(server.URL+"/")))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestPlaylistIDs(t *testing.T) {
	tests := []struct {
		name  string
		mood  string
		first string
		count int
	}{
		{name: "happy", mood: "happy", first: "37i9dQZF1DX3rxVfibe1L0", count: 3},
		{name: "case insensitive", mood: "CALM", first: "37i9dQZF1DX3Ogo9pFvBkY", count: 2},
		{name: "unknown defaults to happy", mood: "bored", first: "37i9dQZF1DX3rxVfibe1L0", count: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := PlaylistIDs(tt.mood)
			require.Len(t, ids, tt.count)
			assert.Equal(t, tt.first, ids[0])
			for _, id := range ids {
				assert.NotContains(t, id, ":")
			}
		})
	}
}

func TestMoodPlaylists(t *testing.T) {
	var (
		mu        sync.Mutex
		requested []string
	)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/playlists/")
		mu.Lock()
		requested = append(requested, id)
		mu.Unlock()

		if id == "37i9dQZF1DX9XIFQuFvzMp" {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"error": map[string]any{"status": 404, "message": "Not found."},
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"id":            id,
			"name":          "Happy Hits!",
			"external_urls": map[string]string{"spotify": "https://open.spotify.com/playlist/" + id},
			"tracks":        map[string]any{"total": 100, "items": []any{}},
		})
	})

	got, err := client.MoodPlaylists(context.Background(), "happy", 2)
	require.NoError(t, err)

	mu.Lock()
	assert.Equal(t, []string{"37i9dQZF1DX3rxVfibe1L0", "37i9dQZF1DX9XIFQuFvzMp"}, requested)
	mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, "Happy Hits!", got[0].Name)
	assert.Equal(t, "https://open.spotify.com/playlist/37i9dQZF1DX3rxVfibe1L0", got[0].URL)
	assert.Equal(t, 100, got[0].Tracks)
}

func TestMoodPlaylists_AllFail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error": map[string]any{"status": 404, "message": "Not found."},
		})
	})

	_, err := client.MoodPlaylists(context.Background(), "sad", 0)
	assert.Error(t, err)
}

func TestSearchPlaylists(t *testing.T) {
	var (
		mu                sync.Mutex
		gotQuery, gotType string
	)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotQuery = r.URL.Query().Get("q")
		gotType = r.URL.Query().Get("type")
		mu.Unlock()

		writeJSON(w, http.StatusOK, map[string]any{
			"playlists": map[string]any{
				"total": 2,
				"items": []any{
					map[string]any{
						"id":            "abc",
						"name":          "Calm Piano",
						"external_urls": map[string]string{"spotify": "https://open.spotify.com/playlist/abc"},
						"tracks":        map[string]any{"total": 42},
					},
					nil,
				},
			},
		})
	})

	got, err := client.SearchPlaylists(context.Background(), "calm piano music", 5)
	require.NoError(t, err)

	mu.Lock()
	assert.Equal(t, "calm piano music", gotQuery)
	assert.Equal(t, "playlist", gotType)
	mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, Playlist{
		ID:     "abc",
		Name:   "Calm Piano",
		URL:    "https://open.spotify.com/playlist/abc",
		Tracks: 42,
	}, got[0])
}

func TestNewClientCredentials_MissingCredentials(t *testing.T) {
	_, err := NewClientCredentials(context.Background(), "id", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestFallbackRecommendations(t *testing.T) {
	got := FallbackRecommendations("Stressed")
	assert.Equal(t, "Soothing and therapeutic music", got.Description)
	assert.Equal(t, []string{"Stress Relief", "Calm Down", "Therapeutic Sounds"}, got.Playlists)

	unknown := FallbackRecommendations("confused")
	assert.Equal(t, "Upbeat and cheerful music", unknown.Description)

	unknown.Playlists[0] = "changed"
	assert.Equal(t, "Happy Hits", FallbackRecommendations("happy").Playlists[0])
}
