package spotify

// Playlist is the subset of Spotify playlist metadata shown to listeners.
type Playlist struct {
	ID     string
	Name   string
	URL    string // open.spotify.com link
	Tracks int    // total track count
}

// Fallback is a canned recommendation used when Spotify is unreachable.
type Fallback struct {
	Description   string
	Playlists     []string
	Artists       []string
	SearchQueries []string
}
