package history

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/justestif/go-mood-to-music/internal/mood"
)

// DefaultMemoryCapacity bounds how many entries a MemoryStore keeps.
const DefaultMemoryCapacity = 500

// MemoryStore keeps the most recent entries in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	entries  []Entry // oldest first
	capacity int
	now      func() time.Time
}

// NewMemoryStore creates a store holding at most capacity entries.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryStore{capacity: capacity, now: time.Now}
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(e, s.now())
	stored := *e
	stored.Analysis = e.Analysis.Clone()

	s.entries = append(s.entries, stored)
	if over := len(s.entries) - s.capacity; over > 0 {
		s.entries = append([]Entry(nil), s.entries[over:]...)
	}
	return nil
}

// Recent implements Store.
func (s *MemoryStore) Recent(_ context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.entries) {
		limit = len(s.entries)
	}
	result := make([]Entry, 0, limit)
	for i := len(s.entries) - 1; i >= 0 && len(result) < limit; i-- {
		e := s.entries[i]
		e.Analysis = e.Analysis.Clone()
		result = append(result, e)
	}
	return result, nil
}

// CountByMood implements Store.
func (s *MemoryStore) CountByMood(_ context.Context) ([]MoodCount, error) {
	s.mu.RLock()
	counts := make(map[string]int)
	for _, e := range s.entries {
		counts[e.Analysis.PrimaryMood]++
	}
	s.mu.RUnlock()

	result := make([]MoodCount, 0, len(counts))
	for m, c := range counts {
		result = append(result, MoodCount{Mood: m, Count: c})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Mood < result[j].Mood
	})
	return result, nil
}

// Lookup implements Store.
func (s *MemoryStore) Lookup(_ context.Context, input string, maxAge time.Duration, sources ...mood.Source) (*Entry, error) {
	key := Key(input)
	cutoff := s.now().Add(-maxAge)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if !e.CreatedAt.After(cutoff) {
			break
		}
		if Key(e.Input) == key && (len(sources) == 0 || slices.Contains(sources, e.Source)) {
			e.Analysis = e.Analysis.Clone()
			return &e, nil
		}
	}
	return nil, ErrNotFound
}

var _ Store = (*MemoryStore)(nil)
