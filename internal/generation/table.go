// Package generation defines the fixed Pokédex number ranges used to bucket catalog records.
package generation

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
)

// Range is an inclusive interval of Pokédex numbers.
type Range struct {
	Key    int    `json:"generation"`
	Region string `json:"region"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

// Contains reports whether id lies within the range.
func (r Range) Contains(id int) bool {
	return id >= r.Start && id <= r.End
}

// Size returns the number of ids covered by the range.
func (r Range) Size() int {
	return r.End - r.Start + 1
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

var ranges = []Range{
	{Key: 1, Region: "Kanto", Start: 1, End: 151},
	{Key: 2, Region: "Johto", Start: 152, End: 251},
	{Key: 3, Region: "Hoenn", Start: 252, End: 386},
	{Key: 4, Region: "Sinnoh", Start: 387, End: 494},
	{Key: 5, Region: "Unova", Start: 495, End: 649},
	{Key: 6, Region: "Kalos", Start: 650, End: 721},
	{Key: 7, Region: "Alola", Start: 722, End: 809},
	{Key: 8, Region: "Galar", Start: 810, End: 898},
	{Key: 9, Region: "Hisui", Start: 899, End: 905},
	{Key: 10, Region: "Paldea", Start: 906, End: 1025},
}

// Table maps generation keys to their ranges in ascending key order.
type Table struct {
	ranges *orderedmap.OrderedMap[int, Range]
}

// Default returns the national Pokédex table, generations 1 through 10.
func Default() *Table {
	t := &Table{ranges: orderedmap.NewOrderedMap[int, Range]()}
	for _, r := range ranges {
		t.ranges.Set(r.Key, r)
	}
	return t
}

// Get returns the range for a generation key.
func (t *Table) Get(key int) (Range, bool) {
	return t.ranges.Get(key)
}

// Valid reports whether key names a generation.
func (t *Table) Valid(key int) bool {
	_, ok := t.ranges.Get(key)
	return ok
}

// Locate returns the range containing id. Ranges are disjoint, so at most one matches.
func (t *Table) Locate(id int) (Range, bool) {
	for el := t.ranges.Front(); el != nil; el = el.Next() {
		if el.Value.Contains(id) {
			return el.Value, true
		}
	}
	return Range{}, false
}

// Keys returns the generation keys in ascending order.
func (t *Table) Keys() []int {
	return t.ranges.Keys()
}

// Ranges returns every range in key order.
func (t *Table) Ranges() []Range {
	out := make([]Range, 0, t.ranges.Len())
	for el := t.ranges.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Len returns the number of generations.
func (t *Table) Len() int {
	return t.ranges.Len()
}
