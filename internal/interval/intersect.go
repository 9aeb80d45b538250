// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package interval provides an interval intersection map keyed by integer
// offsets.
package interval

import (
	"fmt"
	"iter"
	"slices"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints" //nolint:exptostd // Tries to replace w/ cmp.
)

// Intersect is a collection of half-open intervals, each with a value, that
// can be queried for every interval containing a given point.
//
// Internally, the intervals are cut into disjoint entries: maximal runs of
// points that are contained in exactly the same intervals.
//
// A zero Intersect is empty and ready to use.
type Intersect[K Endpoint, V any] struct {
	// Entries, keyed by the last point they contain.
	tree    btree.Map[K, *Entry[K, V]]
	pending []*Entry[K, V] // Scratch space for Insert.
}

// Endpoint is a type that may be used as an interval endpoint.
type Endpoint = constraints.Integer

// Entry is a run of points, [Start, End), that are all contained in the same
// intervals.
type Entry[K Endpoint, V any] struct {
	Start, End K

	// The values of the intervals containing the entry, in the order they
	// were inserted.
	Values []V
}

// Contains returns whether point lies within e.
func (e Entry[K, V]) Contains(point K) bool {
	return e.Start <= point && point < e.End
}

// Len returns the number of entries in m.
func (m *Intersect[K, V]) Len() int {
	return m.tree.Len()
}

// Get returns the entry containing point. If no interval contains it, the
// returned entry has no values.
func (m *Intersect[K, V]) Get(point K) Entry[K, V] {
	iter := m.tree.Iter()
	if !iter.Seek(point) || point < iter.Value().Start {
		return Entry[K, V]{}
	}
	return *iter.Value()
}

// Entries returns an iterator over the entries of m, in order.
func (m *Intersect[K, V]) Entries() iter.Seq[Entry[K, V]] {
	return func(yield func(Entry[K, V]) bool) {
		iter := m.tree.Iter()
		for more := iter.First(); more; more = iter.Next() {
			if !yield(*iter.Value()) {
				return
			}
		}
	}
}

// Insert adds the interval [start, end) with the given value. Empty intervals
// contain no points and are ignored.
//
// Returns true if the interval was disjoint from all others in m.
func (m *Intersect[K, V]) Insert(start, end K, value V) (disjoint bool) {
	if start > end {
		panic(fmt.Sprintf("interval: start (%#v) > end (%#v)", start, end))
	}
	if start == end {
		return false
	}

	var prev *Entry[K, V]
	for entry := range m.overlapping(start, end) {
		switch {
		case prev == nil && start < entry.Start:
			m.pending = append(m.pending, &Entry[K, V]{Start: start, End: entry.Start, Values: []V{value}})
		case prev != nil && prev.End < entry.Start:
			m.pending = append(m.pending, &Entry[K, V]{Start: prev.End, End: entry.Start, Values: []V{value}})
		}

		// Entries that share a prefix of their values may share the backing
		// array too, so values is only ever appended to after clipping.
		values := entry.Values

		if end < entry.End {
			// Cut off the part after end. It keeps its key in the tree.
			head := &Entry[K, V]{Start: entry.Start, End: end}
			entry.Start = end
			m.pending = append(m.pending, head)
			entry = head
		}
		if entry.Start < start {
			m.pending = append(m.pending, &Entry[K, V]{Start: entry.Start, End: start, Values: values})
			entry.Start = start
		}

		entry.Values = append(slices.Clip(values), value)
		prev = entry
	}

	if prev == nil {
		m.tree.Set(end-1, &Entry[K, V]{Start: start, End: end, Values: []V{value}})
		return true
	}

	if prev.End < end {
		m.pending = append(m.pending, &Entry[K, V]{Start: prev.End, End: end, Values: []V{value}})
	}
	for _, entry := range m.pending {
		m.tree.Set(entry.End-1, entry)
	}
	clear(m.pending)
	m.pending = m.pending[:0]
	return false
}

// overlapping returns an iterator over the entries that overlap
// [start, end), in order.
func (m *Intersect[K, V]) overlapping(start, end K) iter.Seq[*Entry[K, V]] {
	return func(yield func(*Entry[K, V]) bool) {
		// Seeking to start finds the first entry that does not end before
		// start; from there, entries overlap until one begins at or after
		// end.
		iter := m.tree.Iter()
		for more := iter.Seek(start); more; more = iter.Next() {
			if iter.Value().Start >= end || !yield(iter.Value()) {
				return
			}
		}
	}
}
