// Package tags suggests artists for the genre and mood tags of an analysis.
package tags

import (
	"context"
	"strings"
	"sync"

	"github.com/justestif/go-mood-to-music/internal/lastfm"
)

// Defaults for batch processing.
const (
	DefaultConcurrency    = 3
	DefaultArtistsPerTag  = 3
	DefaultMaxSuggestions = 6
)

// TagArtists holds the artists fetched for one tag.
type TagArtists struct {
	Tag     string
	Artists []lastfm.Artist
	Error   error // Non-nil if fetching failed
}

// ArtistFetcher abstracts the Last.fm client for testing.
type ArtistFetcher interface {
	TopArtists(ctx context.Context, tag string, limit int) ([]lastfm.Artist, error)
}

// Service fetches artists for several tags concurrently.
type Service struct {
	fetcher       ArtistFetcher
	concurrency   int
	artistsPerTag int
}

// Option configures a Service.
type Option func(*Service)

// WithConcurrency sets the number of concurrent fetch operations.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithArtistsPerTag sets how many artists are requested per tag.
func WithArtistsPerTag(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.artistsPerTag = n
		}
	}
}

// NewService creates a new tag service.
func NewService(fetcher ArtistFetcher, opts ...Option) *Service {
	s := &Service{
		fetcher:       fetcher,
		concurrency:   DefaultConcurrency,
		artistsPerTag: DefaultArtistsPerTag,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchArtistsForTags fetches artists for multiple tags concurrently.
// Results are returned in the same order as input tags.
// Individual fetch errors are captured in TagArtists.Error rather than failing the batch.
func (s *Service) FetchArtistsForTags(ctx context.Context, tags []string) ([]TagArtists, error) {
	if len(tags) == 0 {
		return []TagArtists{}, nil
	}

	results := make([]TagArtists, len(tags))

	type workItem struct {
		index int
		tag   string
	}
	workCh := make(chan workItem, len(tags))
	for i, t := range tags {
		workCh <- workItem{index: i, tag: t}
	}
	close(workCh)

	var wg sync.WaitGroup
	for i := 0; i < min(s.concurrency, len(tags)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for work := range workCh {
				if err := ctx.Err(); err != nil {
					results[work.index] = TagArtists{Tag: work.tag, Artists: []lastfm.Artist{}, Error: err}
					continue
				}

				artists, err := s.fetcher.TopArtists(ctx, work.tag, s.artistsPerTag)
				if err != nil {
					artists = []lastfm.Artist{}
				}
				results[work.index] = TagArtists{Tag: work.tag, Artists: artists, Error: err}
			}
		}()
	}

	wg.Wait()

	if ctx.Err() != nil {
		return results, ctx.Err()
	}
	return results, nil
}

// SuggestArtists returns up to limit distinct artist names across tags,
// interleaving tags so the first genre does not crowd out the others.
func (s *Service) SuggestArtists(ctx context.Context, tags []string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultMaxSuggestions
	}

	results, err := s.FetchArtistsForTags(ctx, tags)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var names []string
	for rank := 0; rank < s.artistsPerTag && len(names) < limit; rank++ {
		for _, r := range results {
			if rank >= len(r.Artists) || len(names) >= limit {
				continue
			}
			name := r.Artists[rank].Name
			key := strings.ToLower(name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			names = append(names, name)
		}
	}
	return names, nil
}
