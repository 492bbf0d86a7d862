package history

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/justestif/go-mood-to-music/internal/mood"
)

// DefaultCacheTTL is how long a stored analysis is reused for identical input.
const DefaultCacheTTL = 24 * time.Hour

// cacheableSources are the origins whose analyses may be reused for free text.
// Table, keyword and fallback results share the store but never answer a lookup.
var cacheableSources = []mood.Source{mood.SourceLLM, mood.SourceCache}

// CachedAnalyzer reuses recent model analyses of the same text before
// calling the wrapped analyzer.
type CachedAnalyzer struct {
	next  mood.Analyzer
	store Store
	ttl   time.Duration
	log   *zap.Logger
}

// NewCachedAnalyzer wraps next with a lookup in store.
func NewCachedAnalyzer(next mood.Analyzer, store Store, ttl time.Duration, log *zap.Logger) *CachedAnalyzer {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedAnalyzer{next: next, store: store, ttl: ttl, log: log}
}

// Analyze implements mood.Analyzer.
func (c *CachedAnalyzer) Analyze(ctx context.Context, text string) (mood.Analysis, mood.Source, error) {
	if Key(text) == "" {
		return mood.Analysis{}, mood.SourceCache, mood.ErrEmptyMood
	}

	e, err := c.store.Lookup(ctx, text, c.ttl, cacheableSources...)
	switch {
	case err == nil:
		c.log.Debug("reusing cached analysis", zap.String("id", e.ID.String()))
		return e.Analysis, mood.SourceCache, nil
	case err != nil && !errors.Is(err, ErrNotFound):
		c.log.Warn("history lookup failed", zap.Error(err))
	}

	return c.next.Analyze(ctx, text)
}

var _ mood.Analyzer = (*CachedAnalyzer)(nil)
