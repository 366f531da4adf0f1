package catalog

import (
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/google/btree"

	"github.com/RamiAldahir/Pokedex-Tracker/internal/generation"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/types"
)

// position locates the first record carrying an id.
type position struct {
	ID  int
	Gen int
	Pos int
}

func positionLess(a, b position) bool {
	return a.ID < b.ID
}

// Snapshot is one complete load: every generation bucket plus an id index.
// A snapshot is mutated only through Store.Update.
type Snapshot struct {
	Source   string
	LoadedAt time.Time
	Stats    LoadStats

	ranges  *generation.Table
	buckets *orderedmap.OrderedMap[int, []types.Record]
	index   *btree.BTreeG[position]
}

// newSnapshot returns a snapshot with an empty bucket for every generation.
func newSnapshot(ranges *generation.Table) *Snapshot {
	s := &Snapshot{
		ranges:  ranges,
		buckets: orderedmap.NewOrderedMap[int, []types.Record](),
		index:   btree.NewG(16, positionLess),
	}
	for _, key := range ranges.Keys() {
		s.buckets.Set(key, []types.Record{})
	}
	return s
}

// add appends rec to the generation bucket. It reports true when the id was
// already present; the index keeps pointing at the first occurrence.
func (s *Snapshot) add(gen int, rec types.Record) bool {
	bucket, _ := s.buckets.Get(gen)
	pos := position{ID: rec.ID, Gen: gen, Pos: len(bucket)}
	s.buckets.Set(gen, append(bucket, rec))

	if s.index.Has(pos) {
		return true
	}
	s.index.ReplaceOrInsert(pos)
	return false
}

// Bucket returns a copy of the records of a generation.
func (s *Snapshot) Bucket(gen int) ([]types.Record, bool) {
	bucket, ok := s.buckets.Get(gen)
	if !ok {
		return nil, false
	}
	out := make([]types.Record, len(bucket))
	copy(out, bucket)
	return out, true
}

func (s *Snapshot) lookup(id int) (position, bool) {
	return s.index.Get(position{ID: id})
}

// record returns a pointer into the bucket for in-place updates.
func (s *Snapshot) record(p position) *types.Record {
	bucket, _ := s.buckets.Get(p.Gen)
	return &bucket[p.Pos]
}

// GenerationSummary is a range with its record counts.
type GenerationSummary struct {
	generation.Range
	Count int `json:"count"`
	Owned int `json:"owned"`
}

// Summary counts records and owned records per generation, in key order.
func (s *Snapshot) Summary() []GenerationSummary {
	out := make([]GenerationSummary, 0, s.buckets.Len())
	for el := s.buckets.Front(); el != nil; el = el.Next() {
		r, _ := s.ranges.Get(el.Key)
		sum := GenerationSummary{Range: r, Count: len(el.Value)}
		for _, rec := range el.Value {
			if rec.Owned {
				sum.Owned++
			}
		}
		out = append(out, sum)
	}
	return out
}

// Len returns the number of stored records, duplicates included.
func (s *Snapshot) Len() int {
	n := 0
	for el := s.buckets.Front(); el != nil; el = el.Next() {
		n += len(el.Value)
	}
	return n
}
