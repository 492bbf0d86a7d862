// Package recommend turns a mood request into a full recommendation response.
package recommend

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/justestif/go-mood-to-music/internal/history"
	"github.com/justestif/go-mood-to-music/internal/mood"
	"github.com/justestif/go-mood-to-music/internal/playlist"
	"github.com/justestif/go-mood-to-music/internal/spotify"
	"github.com/justestif/go-mood-to-music/internal/tags"
)

// Enrichment limits.
const (
	DefaultEnrichTimeout = 5 * time.Second
	searchPlaylistLimit  = 3
	artistTagLimit       = 3
	maxArtists           = 6
)

// Response is the JSON body returned for a mood request.
type Response struct {
	MoodAnalysis            mood.Analysis            `json:"mood_analysis"`
	PlaylistRecommendations playlist.Recommendations `json:"playlist_recommendations"`
	Source                  mood.Source              `json:"source"`
}

// PlaylistFinder looks up live playlists. *spotify.Client satisfies it.
type PlaylistFinder interface {
	MoodPlaylists(ctx context.Context, mood string, limit int) ([]spotify.Playlist, error)
	SearchPlaylists(ctx context.Context, query string, limit int) ([]spotify.Playlist, error)
}

var _ PlaylistFinder = (*spotify.Client)(nil)

// ArtistSuggester suggests artists for genre tags. *tags.Service satisfies it.
type ArtistSuggester interface {
	SuggestArtists(ctx context.Context, tags []string, limit int) ([]string, error)
}

var _ ArtistSuggester = (*tags.Service)(nil)

// Service answers mood requests.
type Service struct {
	text    mood.Analyzer
	table   mood.Analyzer
	finder  PlaylistFinder
	artists ArtistSuggester
	store   history.Store
	timeout time.Duration
	log     *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithPlaylistFinder enables live Spotify playlists.
func WithPlaylistFinder(f PlaylistFinder) Option {
	return func(s *Service) { s.finder = f }
}

// WithArtistSuggester enables artist suggestions.
func WithArtistSuggester(a ArtistSuggester) Option {
	return func(s *Service) { s.artists = a }
}

// WithHistory records every answered request in store.
func WithHistory(store history.Store) Option {
	return func(s *Service) { s.store = store }
}

// WithEnrichTimeout bounds the time spent on optional enrichment.
func WithEnrichTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a service that classifies free text with text.
func NewService(text mood.Analyzer, opts ...Option) *Service {
	s := &Service{
		text:    text,
		table:   mood.NewTableAnalyzer(),
		timeout: DefaultEnrichTimeout,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeText classifies free text and builds recommendations.
func (s *Service) AnalyzeText(ctx context.Context, text string) (*Response, error) {
	if strings.TrimSpace(text) == "" {
		return nil, mood.ErrEmptyMood
	}
	return s.respond(ctx, s.text, text)
}

// AnalyzeSelection builds recommendations for a mood button.
func (s *Service) AnalyzeSelection(ctx context.Context, label string) (*Response, error) {
	return s.respond(ctx, s.table, label)
}

func (s *Service) respond(ctx context.Context, analyzer mood.Analyzer, input string) (*Response, error) {
	analysis, source, err := analyzer.Analyze(ctx, input)
	if err != nil {
		return nil, err
	}
	analysis = mood.Normalize(analysis)

	resp := &Response{
		MoodAnalysis:            analysis,
		PlaylistRecommendations: playlist.Recommend(analysis),
		Source:                  source,
	}
	s.enrich(ctx, resp)
	s.record(ctx, input, resp)
	return resp, nil
}

// SpotifyStub answers a mood button from the canned Spotify table, adding
// curated playlists when a PlaylistFinder is configured. Unknown labels get
// the happy set.
func (s *Service) SpotifyStub(ctx context.Context, label string) (*Response, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, mood.ErrEmptyMood
	}

	fb := spotify.FallbackRecommendations(label)
	resp := &Response{
		MoodAnalysis: mood.Analysis{
			PrimaryMood:      label,
			SecondaryMood:    "music-focused",
			Description:      fb.Description,
			EnergyLevel:      mood.EnergyMedium,
			TempoPreference:  mood.TempoMedium,
			GenreSuggestions: []string{"Pop", "Rock", "Electronic"},
			Keywords:         []string{label, "music", "playlist"},
		},
		PlaylistRecommendations: playlist.Recommendations{
			PlaylistTitles:       fb.Playlists,
			SearchQueries:        fb.SearchQueries,
			RecommendedPlatforms: append([]string(nil), playlist.Platforms...),
			Artists:              fb.Artists,
		},
		Source: mood.SourceTable,
	}

	if s.finder != nil {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		found, err := s.finder.MoodPlaylists(ctx, label, spotify.DefaultPlaylistLimit)
		if err != nil {
			s.log.Warn("spotify playlists unavailable", zap.String("mood", label), zap.Error(err))
		}
		resp.PlaylistRecommendations.SpotifyPlaylists = toPlaylists(found)
	}

	s.record(ctx, label, resp)
	return resp, nil
}

// enrich adds live playlists and artists. Failures are logged and leave
// the corresponding fields empty.
func (s *Service) enrich(ctx context.Context, resp *Response) {
	if s.finder == nil && s.artists == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	recs := &resp.PlaylistRecommendations
	g, ctx := errgroup.WithContext(ctx)

	if s.finder != nil && len(recs.SearchQueries) > 0 {
		query := recs.SearchQueries[0]
		g.Go(func() error {
			found, err := s.finder.SearchPlaylists(ctx, query, searchPlaylistLimit)
			if err != nil {
				s.log.Warn("spotify search failed", zap.String("query", query), zap.Error(err))
				return nil
			}
			recs.SpotifyPlaylists = toPlaylists(found)
			return nil
		})
	}

	if s.artists != nil && len(resp.MoodAnalysis.GenreSuggestions) > 0 {
		genres := resp.MoodAnalysis.GenreSuggestions
		if len(genres) > artistTagLimit {
			genres = genres[:artistTagLimit]
		}
		g.Go(func() error {
			names, err := s.artists.SuggestArtists(ctx, genres, maxArtists)
			if err != nil {
				s.log.Warn("artist suggestions failed", zap.Strings("tags", genres), zap.Error(err))
				return nil
			}
			recs.Artists = names
			return nil
		})
	}

	_ = g.Wait()
}

func (s *Service) record(ctx context.Context, input string, resp *Response) {
	if s.store == nil {
		return
	}
	e := &history.Entry{
		Input:    input,
		Source:   resp.Source,
		Analysis: resp.MoodAnalysis,
	}
	if err := s.store.Save(ctx, e); err != nil {
		s.log.Warn("saving history failed", zap.Error(err))
	}
}

func toPlaylists(in []spotify.Playlist) []playlist.SpotifyPlaylist {
	if len(in) == 0 {
		return nil
	}
	out := make([]playlist.SpotifyPlaylist, len(in))
	for i, p := range in {
		out[i] = playlist.SpotifyPlaylist{Name: p.Name, URL: p.URL, Tracks: p.Tracks}
	}
	return out
}
