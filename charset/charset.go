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

// Package charset provides an immutable set of characters, used by
// character-class matchers.
package charset

import (
	"slices"
	"strings"

	"github.com/bufbuild/pegkit/input"
)

// Set is an immutable set of characters.
//
// A Set is either positive, containing exactly the listed characters, or
// negated, containing every character except the listed ones. Every
// operation returns a new Set; the receiver is never modified.
//
// A zero Set is empty and ready to use.
type Set struct {
	negated bool
	chars   []rune // Sorted and deduplicated.
}

var (
	// Empty is the set containing no characters.
	Empty = Set{}
	// All is the set containing every character.
	All = Set{negated: true}
)

// Of returns a set containing exactly the given characters.
func Of(chars ...rune) Set {
	return Set{chars: normalize(chars)}
}

// AllBut returns a set containing every character except the given ones.
func AllBut(chars ...rune) Set {
	return Set{negated: true, chars: normalize(chars)}
}

// IsNegated returns whether this set is described by the characters it
// excludes.
func (s Set) IsNegated() bool {
	return s.negated
}

// Chars returns the listed characters: the members of a positive set, or
// the excluded characters of a negated set.
func (s Set) Chars() []rune {
	return slices.Clone(s.chars)
}

// IsEmpty returns whether this set contains no characters.
func (s Set) IsEmpty() bool {
	return !s.negated && len(s.chars) == 0
}

// Contains returns whether c is a member of this set.
func (s Set) Contains(c rune) bool {
	_, found := slices.BinarySearch(s.chars, c)
	return found != s.negated
}

// Add returns a set that also contains c.
func (s Set) Add(c rune) Set {
	if s.negated {
		return Set{negated: true, chars: without(s.chars, c)}
	}
	return Set{chars: with(s.chars, c)}
}

// Remove returns a set that does not contain c.
func (s Set) Remove(c rune) Set {
	if s.negated {
		return Set{negated: true, chars: with(s.chars, c)}
	}
	return Set{chars: without(s.chars, c)}
}

// Union returns the set of characters in either s or other.
func (s Set) Union(other Set) Set {
	switch {
	case !s.negated && !other.negated:
		return Set{chars: normalize(append(slices.Clone(s.chars), other.chars...))}
	case s.negated && other.negated:
		return Set{negated: true, chars: intersect(s.chars, other.chars)}
	case !s.negated:
		return Set{negated: true, chars: subtract(other.chars, s.chars)}
	default:
		return Set{negated: true, chars: subtract(s.chars, other.chars)}
	}
}

// Difference returns the set of characters in s but not in other.
func (s Set) Difference(other Set) Set {
	switch {
	case !s.negated && !other.negated:
		return Set{chars: subtract(s.chars, other.chars)}
	case !s.negated:
		return Set{chars: intersect(s.chars, other.chars)}
	case !other.negated:
		return Set{negated: true, chars: normalize(append(slices.Clone(s.chars), other.chars...))}
	default:
		return Set{chars: subtract(other.chars, s.chars)}
	}
}

// Equal returns whether two sets contain the same characters.
func (s Set) Equal(other Set) bool {
	return s.negated == other.negated && slices.Equal(s.chars, other.chars)
}

// String implements [fmt.Stringer].
func (s Set) String() string {
	var out strings.Builder
	if s.negated {
		out.WriteByte('!')
	}
	out.WriteByte('[')
	for _, c := range s.chars {
		out.WriteString(input.Escape(c))
	}
	out.WriteByte(']')
	return out.String()
}

func normalize(chars []rune) []rune {
	if len(chars) == 0 {
		return nil
	}
	chars = slices.Clone(chars)
	slices.Sort(chars)
	return slices.Compact(chars)
}

func with(chars []rune, c rune) []rune {
	i, found := slices.BinarySearch(chars, c)
	if found {
		return chars
	}
	return slices.Insert(slices.Clone(chars), i, c)
}

func without(chars []rune, c rune) []rune {
	i, found := slices.BinarySearch(chars, c)
	if !found {
		return chars
	}
	return slices.Delete(slices.Clone(chars), i, i+1)
}

// intersect returns the characters in both a and b.
func intersect(a, b []rune) []rune {
	var out []rune
	for _, c := range a {
		if _, found := slices.BinarySearch(b, c); found {
			out = append(out, c)
		}
	}
	return out
}

// subtract returns the characters in a but not b.
func subtract(a, b []rune) []rune {
	var out []rune
	for _, c := range a {
		if _, found := slices.BinarySearch(b, c); !found {
			out = append(out, c)
		}
	}
	return out
}
