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
	"slices"
	"strings"
	"sync"
)

// Text is an immutable [Input] over a string.
//
// A nil *Text behaves like an empty input with the path "".
type Text struct {
	path  string
	chars []rune

	once sync.Once
	// The index after each \n in chars, preceded by a zero. Given an index,
	// the line containing it is found by binary search on this slice.
	lineIndex []int
}

var _ Input = (*Text)(nil)

// NewText constructs a new input over text.
func NewText(path, text string) *Text {
	return &Text{path: path, chars: []rune(text)}
}

// Path implements [Input].
func (t *Text) Path() string {
	if t == nil {
		return ""
	}
	return t.path
}

// Len implements [Input].
func (t *Text) Len() int {
	if t == nil {
		return 0
	}
	return len(t.chars)
}

// CharAt implements [Input].
func (t *Text) CharAt(index int) rune {
	if t == nil || index < 0 || index >= len(t.chars) {
		return EOI
	}
	return t.chars[index]
}

// Test implements [Input].
func (t *Text) Test(index int, chars []rune) bool {
	end := index + len(chars)
	if t == nil || index < 0 || end > len(t.chars) {
		return false
	}
	return slices.Equal(t.chars[index:end], chars)
}

// Extract implements [Input].
func (t *Text) Extract(start, end int) string {
	start = max(0, start)
	end = min(t.Len(), end)
	if start >= end {
		return ""
	}
	return string(t.chars[start:end])
}

// ExtractLine implements [Input].
func (t *Text) ExtractLine(line int) string {
	lines := t.lines()
	if line < 1 || line > len(lines) {
		return ""
	}

	start := lines[line-1]
	end := len(t.chars)
	if line < len(lines) {
		end = lines[line] - 1 // Drop the \n.
	}
	return strings.TrimSuffix(string(t.chars[start:end]), "\r")
}

// LineCount implements [Input].
func (t *Text) LineCount() int {
	return len(t.lines())
}

// Position implements [Input].
//
// This operation is O(log n) in the number of lines.
func (t *Text) Position(index int) Position {
	lines := t.lines()
	index = max(0, min(index, t.Len()))

	// Find the greatest line such that lines[line] <= index.
	line, exact := slices.BinarySearch(lines, index)
	if !exact {
		line--
	}

	return Position{
		Line:   line + 1,
		Column: index - lines[line] + 1,
	}
}

// OriginalIndex implements [Input]. Text is never spliced, so this is the
// identity.
func (*Text) OriginalIndex(index int) int {
	return index
}

// String implements [fmt.Stringer].
func (t *Text) String() string {
	if t == nil {
		return ""
	}
	return string(t.chars)
}

func (t *Text) lines() []int {
	if t == nil {
		return []int{0}
	}

	t.once.Do(func() {
		t.lineIndex = append(t.lineIndex, 0)
		for i, c := range t.chars {
			if c == '\n' {
				t.lineIndex = append(t.lineIndex, i+1)
			}
		}
	})
	return t.lineIndex
}
