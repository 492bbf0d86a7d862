package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/justestif/go-mood-to-music/internal/config"
	"github.com/justestif/go-mood-to-music/internal/db"
	"github.com/justestif/go-mood-to-music/internal/history"
	"github.com/justestif/go-mood-to-music/internal/lastfm"
	"github.com/justestif/go-mood-to-music/internal/llm"
	"github.com/justestif/go-mood-to-music/internal/mood"
	"github.com/justestif/go-mood-to-music/internal/recommend"
	"github.com/justestif/go-mood-to-music/internal/spotify"
	"github.com/justestif/go-mood-to-music/internal/tags"
)

// app holds the wired services.
type app struct {
	service  *recommend.Service
	store    history.Store
	database *db.DB // nil without DATABASE_URL
}

// build wires every service the configuration enables. Missing optional
// credentials disable the matching feature instead of failing.
func build(ctx context.Context, cfg config.Config, log *zap.Logger) (*app, error) {
	a := &app{}

	if cfg.Database.URL != "" {
		database, err := db.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, err
		}
		a.database = database
		a.store = history.NewDBStore(database)
		log.Info("history stored in postgres")
	} else {
		a.store = history.NewMemoryStore(history.DefaultMemoryCapacity)
	}

	text, err := textAnalyzer(ctx, cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	if la, ok := text.(*llm.Analyzer); ok && la.Configured() {
		text = history.NewCachedAnalyzer(text, a.store, cfg.CacheTTL, log)
	}

	opts := []recommend.Option{
		recommend.WithHistory(a.store),
		recommend.WithLogger(log),
	}

	if cfg.SpotifyEnabled() {
		client, err := spotify.NewClientCredentials(ctx, cfg.Spotify.ClientID, cfg.Spotify.ClientSecret)
		if err != nil {
			log.Warn("spotify disabled", zap.Error(err))
		} else {
			opts = append(opts, recommend.WithPlaylistFinder(client))
		}
	}

	if cfg.LastFM.APIKey != "" {
		client, err := lastfm.NewClient(lastfm.Config{APIKey: cfg.LastFM.APIKey, Timeout: cfg.LastFM.Timeout})
		if err != nil {
			log.Warn("last.fm disabled", zap.Error(err))
		} else {
			var fetcher tags.ArtistFetcher = client
			if a.database != nil {
				fetcher = tags.NewCachedArtistFetcher(a.database.TagArtists(), client)
			}
			opts = append(opts, recommend.WithArtistSuggester(tags.NewService(fetcher)))
		}
	}

	a.service = recommend.NewService(text, opts...)
	return a, nil
}

// textAnalyzer picks the free-text strategy.
func textAnalyzer(ctx context.Context, cfg config.Config, log *zap.Logger) (mood.Analyzer, error) {
	hasKey := cfg.LLM.APIKey() != ""

	switch cfg.Strategy {
	case config.StrategyKeyword:
		return mood.NewKeywordAnalyzer(), nil
	case config.StrategyAuto:
		if !hasKey {
			log.Info("no LLM key configured, using keyword matching")
			return mood.NewKeywordAnalyzer(), nil
		}
	}

	if !hasKey {
		log.Warn("no LLM key configured, every text request gets the neutral profile")
		return llm.NewAnalyzer(nil, log), nil
	}

	opts := cfg.LLM.Options()
	completer, err := llm.NewCompleter(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("creating %s client: %w", opts.Provider, err)
	}
	log.Info("using language model", zap.String("provider", opts.Provider), zap.String("model", modelName(opts)))
	return llm.NewAnalyzer(completer, log), nil
}

// maintain prunes old history and stale artist caches.
func (a *app) maintain(ctx context.Context, cfg config.Config) error {
	if a.database == nil || cfg.HistoryRetention <= 0 {
		return nil
	}
	store, ok := a.store.(*history.DBStore)
	if !ok {
		return nil
	}
	if _, err := store.Prune(ctx, cfg.HistoryRetention); err != nil {
		return err
	}
	return a.database.TagArtists().DeleteStale(ctx, time.Now().Add(-tags.CacheTTL))
}

// Close releases the database pool.
func (a *app) Close() {
	if a.database != nil {
		a.database.Close()
	}
}
