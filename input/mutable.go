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

package input

import (
	"fmt"
	"slices"
	"strings"
)

// Mutable is an [Input] that allows characters to be spliced into another
// input without disturbing it.
//
// Indices into a Mutable count inserted characters. [Mutable.Position],
// [Mutable.ExtractLine] and [Mutable.OriginalIndex] translate back to the
// wrapped input, so diagnostics always refer to the text the user wrote.
type Mutable struct {
	base Input

	// Sorted indices, in this input's coordinates, of every inserted
	// character, and the characters themselves.
	inserts []int
	chars   []rune
}

var _ Input = (*Mutable)(nil)

// NewMutable wraps an input for splicing.
func NewMutable(base Input) *Mutable {
	return &Mutable{base: base}
}

// Base returns the wrapped input.
func (m *Mutable) Base() Input {
	return m.base
}

// Insert inserts c at index. Every character at or after index moves one
// position to the right.
func (m *Mutable) Insert(index int, c rune) {
	j, _ := slices.BinarySearch(m.inserts, index)
	for k := j; k < len(m.inserts); k++ {
		m.inserts[k]++
	}
	m.inserts = slices.Insert(m.inserts, j, index)
	m.chars = slices.Insert(m.chars, j, c)
}

// Undo removes the character previously inserted at index, and returns it.
//
// Panics if no character was inserted at index.
func (m *Mutable) Undo(index int) rune {
	j := m.mustFind(index, "Undo")
	c := m.chars[j]
	m.inserts = slices.Delete(m.inserts, j, j+1)
	m.chars = slices.Delete(m.chars, j, j+1)
	for k := j; k < len(m.inserts); k++ {
		m.inserts[k]--
	}
	return c
}

// Replace replaces the character previously inserted at index.
//
// Panics if no character was inserted at index.
func (m *Mutable) Replace(index int, c rune) {
	m.chars[m.mustFind(index, "Replace")] = c
}

// Inserted returns whether the character at index was inserted.
func (m *Mutable) Inserted(index int) bool {
	_, found := slices.BinarySearch(m.inserts, index)
	return found
}

// Path implements [Input].
func (m *Mutable) Path() string {
	return m.base.Path()
}

// Len implements [Input].
func (m *Mutable) Len() int {
	return m.base.Len() + len(m.inserts)
}

// CharAt implements [Input].
func (m *Mutable) CharAt(index int) rune {
	j, found := slices.BinarySearch(m.inserts, index)
	if found {
		return m.chars[j]
	}
	return m.base.CharAt(index - j)
}

// Test implements [Input].
func (m *Mutable) Test(index int, chars []rune) bool {
	for i, c := range chars {
		if m.CharAt(index+i) != c {
			return false
		}
	}
	return true
}

// Extract implements [Input].
func (m *Mutable) Extract(start, end int) string {
	start = max(0, start)
	end = min(m.Len(), end)

	var out strings.Builder
	for i := start; i < end; i++ {
		out.WriteRune(m.CharAt(i))
	}
	return out.String()
}

// ExtractLine implements [Input].
func (m *Mutable) ExtractLine(line int) string {
	return m.base.ExtractLine(line)
}

// LineCount implements [Input].
func (m *Mutable) LineCount() int {
	return m.base.LineCount()
}

// Position implements [Input].
func (m *Mutable) Position(index int) Position {
	return m.base.Position(m.OriginalIndex(index))
}

// OriginalIndex implements [Input].
//
// An inserted character maps to the original index of the character that
// follows it.
func (m *Mutable) OriginalIndex(index int) int {
	j, _ := slices.BinarySearch(m.inserts, index)
	return m.base.OriginalIndex(index - j)
}

// String implements [fmt.Stringer], with sentinels escaped.
func (m *Mutable) String() string {
	return EscapeString(m.Extract(0, m.Len()))
}

func (m *Mutable) mustFind(index int, op string) int {
	j, found := slices.BinarySearch(m.inserts, index)
	if !found {
		panic(fmt.Sprintf("input: Mutable.%s(%d): no inserted character at this index", op, index))
	}
	return j
}
