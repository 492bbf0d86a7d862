package lastfm

// Artist is an artist entry from a Last.fm tag chart.
type Artist struct {
	Name string `json:"name"`
	MBID string `json:"mbid,omitempty"`
	URL  string `json:"url"`
}

// topArtistsResponse is the JSON response for tag.getTopArtists.
type topArtistsResponse struct {
	TopArtists struct {
		Artist []Artist `json:"artist"`
		Attr   struct {
			Tag string `json:"tag"`
		} `json:"@attr"`
	} `json:"topartists"`
}

// apiError represents a Last.fm API error response.
type apiError struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}
