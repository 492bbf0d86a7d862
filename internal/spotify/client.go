// Package spotify provides a wrapper around the Spotify Web API.
package spotify

import (
	"context"
	"errors"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

// ErrMissingCredentials is returned when SPOTIFY_ID or SPOTIFY_SECRET is not set.
var ErrMissingCredentials = errors.New("missing SPOTIFY_ID or SPOTIFY_SECRET")

// Client wraps the Spotify API client with convenience methods.
type Client struct {
	api *spotify.Client
}

// New creates a new Spotify client wrapper.
// The underlying client should already be authenticated.
func New(api *spotify.Client) *Client {
	return &Client{api: api}
}

// NewClientCredentials creates a client authenticated with the app's own
// credentials. No user login is involved, so only public catalog data is
// reachable. Tokens are fetched and refreshed lazily by the oauth2 transport.
func NewClientCredentials(ctx context.Context, clientID, clientSecret string) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrMissingCredentials
	}

	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	return New(spotify.New(cfg.Client(ctx), spotify.WithRetry(true))), nil
}
