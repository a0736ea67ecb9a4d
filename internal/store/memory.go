package store

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/i474232898/weather-placeholder/internal/weather"
)

var (
	// ErrNotFound is returned when no sample set matches the lookup.
	ErrNotFound = errors.New("no sample set found")
)

// MemoryStore is a concurrency-safe in-memory store of generated sample sets.
type MemoryStore struct {
	mu sync.RWMutex

	// insertion order, oldest first
	sets []weather.SampleSet
	byID map[string]int

	// retention configuration
	maxHistory int           // max number of sets kept
	maxAge     time.Duration // optional max age, measured from GeneratedAt

	clock clockwork.Clock
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory or maxAge is <= 0, that limit is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration, clock clockwork.Clock) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStore{
		byID:       make(map[string]int),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		clock:      clock,
	}
}

// Save appends a set and enforces retention.
func (s *MemoryStore) Save(set weather.SampleSet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sets = append(s.sets, set)

	// Enforce retention by count.
	drop := 0
	if s.maxHistory > 0 && len(s.sets) > s.maxHistory {
		drop = len(s.sets) - s.maxHistory
	}

	// Enforce retention by age. The newest set is always kept.
	if s.maxAge > 0 {
		cutoff := s.clock.Now().Add(-s.maxAge)
		for drop < len(s.sets)-1 && s.sets[drop].GeneratedAt.Before(cutoff) {
			drop++
		}
	}

	if drop > 0 {
		s.sets = append([]weather.SampleSet(nil), s.sets[drop:]...)
	}
	s.reindex()
}

func (s *MemoryStore) reindex() {
	clear(s.byID)
	for i, set := range s.sets {
		s.byID[set.ID] = i
	}
}

// Get returns the set with the given ID.
func (s *MemoryStore) Get(id string) (weather.SampleSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return weather.SampleSet{}, ErrNotFound
	}
	return s.sets[i], nil
}

// Latest returns the most recently saved set.
func (s *MemoryStore) Latest() (weather.SampleSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.sets) == 0 {
		return weather.SampleSet{}, ErrNotFound
	}
	return s.sets[len(s.sets)-1], nil
}

// LatestFor returns the most recent set starting on the given date.
func (s *MemoryStore) LatestFor(start weather.Date) (weather.SampleSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.sets) - 1; i >= 0; i-- {
		if s.sets[i].Start.Equal(start) {
			return s.sets[i], nil
		}
	}
	return weather.SampleSet{}, ErrNotFound
}

// List returns all retained sets, oldest first.
func (s *MemoryStore) List() []weather.SampleSet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]weather.SampleSet, len(s.sets))
	copy(out, s.sets)
	return out
}
