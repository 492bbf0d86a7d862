package tags

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/justestif/go-mood-to-music/internal/db"
	"github.com/justestif/go-mood-to-music/internal/lastfm"
)

// CacheTTL is the duration after which cached tag artists are considered stale.
const CacheTTL = 7 * 24 * time.Hour

// ArtistStore persists tag artist lists. *db.TagArtistRepository satisfies it.
type ArtistStore interface {
	GetForTag(ctx context.Context, tag string) ([]db.TagArtist, error)
	ReplaceForTag(ctx context.Context, tag string, artists []db.TagArtist) error
}

var _ ArtistStore = (*db.TagArtistRepository)(nil)

// CachedArtistFetcher implements ArtistFetcher with database persistence.
// It checks the store first and falls back to the wrapped fetcher for
// misses and stale entries, persisting new results.
type CachedArtistFetcher struct {
	store   ArtistStore
	fetcher ArtistFetcher
	ttl     time.Duration
	now     func() time.Time
}

// NewCachedArtistFetcher wraps fetcher with a persistent cache.
func NewCachedArtistFetcher(store ArtistStore, fetcher ArtistFetcher) *CachedArtistFetcher {
	return &CachedArtistFetcher{
		store:   store,
		fetcher: fetcher,
		ttl:     CacheTTL,
		now:     time.Now,
	}
}

// TopArtists returns cached artists for tag when fresh and long enough,
// otherwise fetches and stores them.
func (c *CachedArtistFetcher) TopArtists(ctx context.Context, tag string, limit int) ([]lastfm.Artist, error) {
	key := strings.ToLower(strings.TrimSpace(tag))

	cached, err := c.store.GetForTag(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("getting cached artists: %w", err)
	}

	// Lazy invalidation: stale or short lists are refetched
	if len(cached) > 0 && len(cached) >= limit && !cached[0].FetchedAt.Before(c.now().Add(-c.ttl)) {
		return toArtists(cached, limit), nil
	}

	artists, err := c.fetcher.TopArtists(ctx, key, limit)
	if err != nil {
		return nil, err
	}

	now := c.now()
	rows := make([]db.TagArtist, len(artists))
	for i, a := range artists {
		rows[i] = db.TagArtist{
			Tag:       key,
			Rank:      i,
			Name:      a.Name,
			URL:       a.URL,
			FetchedAt: now,
		}
	}
	if err := c.store.ReplaceForTag(ctx, key, rows); err != nil {
		return artists, fmt.Errorf("persisting artists: %w", err)
	}
	return artists, nil
}

func toArtists(rows []db.TagArtist, limit int) []lastfm.Artist {
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	artists := make([]lastfm.Artist, len(rows))
	for i, r := range rows {
		artists[i] = lastfm.Artist{Name: r.Name, URL: r.URL}
	}
	return artists
}
