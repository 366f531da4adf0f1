package catalog

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/RamiAldahir/Pokedex-Tracker/internal/generation"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/types"
)

var (
	// ErrGenerationNotFound is returned for a key outside the range table.
	ErrGenerationNotFound = errors.New("generation not found")
	// ErrRecordNotFound is returned when no record carries the requested id.
	ErrRecordNotFound = errors.New("record not found")
)

// Change describes an applied ownership update.
type Change struct {
	Generation int
	Record     types.Record
	Previous   bool
}

// Status describes the current snapshot.
type Status struct {
	Source   string    `json:"source"`
	Loaded   bool      `json:"loaded"`
	LoadedAt time.Time `json:"loaded_at"`
	Records  int       `json:"records"`
	Owned    int       `json:"owned"`
	Stats    LoadStats `json:"stats"`
}

// Store holds the current snapshot behind a read-write lock.
type Store struct {
	mu     sync.RWMutex
	ranges *generation.Table
	snap   *Snapshot
}

// NewStore creates a store holding an empty snapshot.
func NewStore(ranges *generation.Table) *Store {
	return &Store{
		ranges: ranges,
		snap:   newSnapshot(ranges),
	}
}

// Ranges returns the range table the store buckets by.
func (s *Store) Ranges() *generation.Table {
	return s.ranges
}

// Replace swaps in a new snapshot. Readers see the old or the new one, never a mix.
func (s *Store) Replace(snap *Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Generation returns a copy of the records of generation key.
// A valid key with nothing loaded yields an empty slice.
func (s *Store) Generation(key int) ([]types.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.snap.Bucket(key)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrGenerationNotFound, key)
	}
	return records, nil
}

// Update sets the owned flag of the first record with id.
func (s *Store) Update(id int, owned bool) (Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.snap.lookup(id)
	if !ok {
		return Change{}, fmt.Errorf("%w: %d", ErrRecordNotFound, id)
	}

	rec := s.snap.record(pos)
	change := Change{Generation: pos.Gen, Previous: rec.Owned}
	rec.Owned = owned
	change.Record = *rec
	return change, nil
}

// Summary returns per-generation counts of the current snapshot.
func (s *Store) Summary() []GenerationSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Summary()
}

// Status returns metadata about the current snapshot.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		Source:   s.snap.Source,
		Loaded:   !s.snap.LoadedAt.IsZero(),
		LoadedAt: s.snap.LoadedAt,
		Records:  s.snap.Len(),
		Stats:    s.snap.Stats,
	}
	for _, g := range s.snap.Summary() {
		st.Owned += g.Owned
	}
	return st
}
