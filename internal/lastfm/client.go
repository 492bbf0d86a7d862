// Package lastfm provides Last.fm API integration for finding artists by genre or mood tag.
package lastfm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	baseURL   = "http://ws.audioscrobbler.com/2.0/"
	userAgent = "go-mood-to-music/1.0"

	// DefaultArtistLimit is the number of artists requested per tag.
	DefaultArtistLimit = 5
)

// Last.fm API error codes.
const (
	errCodeInvalidParams = 6
	errCodeInvalidAPIKey = 10
	errCodeRateLimited   = 29
)

// Sentinel errors.
var (
	// ErrMissingAPIKey is returned when no API key is configured.
	ErrMissingAPIKey = errors.New("missing Last.fm API key")

	// ErrRateLimited is returned when the API rate limit is exceeded after retries.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidAPIKey is returned when the API key is invalid.
	ErrInvalidAPIKey = errors.New("invalid API key")

	// ErrUnknownTag is returned when Last.fm does not recognize a tag.
	ErrUnknownTag = errors.New("unknown tag")
)

// Config holds Last.fm API configuration.
type Config struct {
	APIKey  string
	Timeout time.Duration
}

// Client is a Last.fm API client with caching and rate limiting.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	retryDelay []time.Duration

	// In-memory cache keyed by "{tag}:{limit}"
	cache   map[string][]Artist
	cacheMu sync.RWMutex
}

// NewClient creates a new Last.fm API client from the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey: cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:    baseURL,
		retryDelay: []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
		cache:      make(map[string][]Artist),
	}, nil
}

// TopArtists returns the most listened artists for a tag such as "jazz" or
// "melancholic". Results are cached in memory. Returns an empty slice (not
// nil) if the tag has no artists.
func (c *Client) TopArtists(ctx context.Context, tag string, limit int) ([]Artist, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if limit <= 0 {
		limit = DefaultArtistLimit
	}
	cacheKey := fmt.Sprintf("%s:%d", tag, limit)

	c.cacheMu.RLock()
	if cached, ok := c.cache[cacheKey]; ok {
		c.cacheMu.RUnlock()
		return cached, nil
	}
	c.cacheMu.RUnlock()

	params := url.Values{
		"method":  {"tag.getTopArtists"},
		"tag":     {tag},
		"limit":   {strconv.Itoa(limit)},
		"format":  {"json"},
		"api_key": {c.apiKey},
	}

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("fetching top artists for %q: %w", tag, err)
	}

	var resp topArtistsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing top artists response: %w", err)
	}

	artists := resp.TopArtists.Artist
	if artists == nil {
		artists = []Artist{}
	}
	if len(artists) > limit {
		artists = artists[:limit]
	}

	c.cacheMu.Lock()
	c.cache[cacheKey] = artists
	c.cacheMu.Unlock()

	return artists, nil
}

// doRequest performs an HTTP GET request, retrying with backoff while rate limited.
func (c *Client) doRequest(ctx context.Context, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt <= len(c.retryDelay); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay[attempt-1]):
			}
		}

		body, err := c.doSingleRequest(ctx, reqURL)
		if err == nil {
			return body, nil
		}

		if errors.Is(err, ErrRateLimited) {
			lastErr = err
			continue
		}
		return nil, err
	}

	return nil, lastErr
}

// doSingleRequest performs a single HTTP request.
func (c *Client) doSingleRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != 0 {
		switch apiErr.Error {
		case errCodeRateLimited:
			return nil, ErrRateLimited
		case errCodeInvalidAPIKey:
			return nil, ErrInvalidAPIKey
		case errCodeInvalidParams:
			return nil, fmt.Errorf("%w: %s", ErrUnknownTag, apiErr.Message)
		default:
			return nil, fmt.Errorf("API error %d: %s", apiErr.Error, apiErr.Message)
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return body, nil
}
