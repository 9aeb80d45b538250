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

package grammar

import "github.com/bufbuild/pegkit/input"

// IsSingleChar returns whether m is one of the character-class kinds, which
// consume at most one character.
func IsSingleChar(m Matcher) bool {
	return m.Kind().IsSingleChar()
}

// AcceptsChar returns whether a single-character matcher matches c.
//
// Only [KindEOI] accepts [input.EOI], and no matcher accepts a sentinel.
// Returns false for matchers that are not single-character.
func AcceptsChar(m Matcher, c rune) bool {
	if m.Kind() == KindEOI {
		return c == input.EOI
	}
	if c == input.EOI || input.IsSentinel(c) {
		return false
	}

	switch m.Kind() {
	case KindChar, KindCharIgnoreCase:
		lo, hi := m.Range()
		return c == lo || c == hi
	case KindCharRange:
		lo, hi := m.Range()
		return lo <= c && c <= hi
	case KindAnyOf:
		return m.Set().Contains(c)
	case KindAny:
		return true
	default:
		return false
	}
}

// StarterChar returns a character that a single-character matcher accepts,
// for use when error recovery needs to synthesize one.
//
// Returns false if m is not single-character, or accepts nothing.
func StarterChar(m Matcher) (rune, bool) {
	switch m.Kind() {
	case KindChar, KindCharIgnoreCase, KindCharRange:
		return m.Char(), true
	case KindAnyOf:
		set := m.Set()
		if !set.IsNegated() {
			chars := set.Chars()
			if len(chars) == 0 {
				return 0, false
			}
			return chars[0], true
		}
		for c := rune(' '); c < input.Del; c++ {
			if set.Contains(c) {
				return c, true
			}
		}
		return 0, false
	case KindAny:
		return ' ', true
	case KindEOI:
		return input.EOI, true
	default:
		return 0, false
	}
}

// CanMatchEmpty returns whether m can succeed without consuming anything.
func CanMatchEmpty(m Matcher) bool {
	memo := make(map[Matcher]bool)
	var v *Visitor[bool]
	recurse := func(m Matcher) bool {
		if ok, seen := memo[m]; seen {
			return ok
		}
		// A matcher reached again through a cycle is assumed to need input;
		// otherwise the grammar would be left-recursive.
		memo[m] = false
		ok := Visit(m, v)
		memo[m] = ok
		return ok
	}
	always := func(Matcher) bool { return true }
	v = &Visitor[bool]{
		Sequence: func(m Matcher) bool {
			for _, child := range m.Children() {
				if !recurse(child) {
					return false
				}
			}
			return true
		},
		FirstOf: func(m Matcher) bool {
			for _, child := range m.Children() {
				if recurse(child) {
					return true
				}
			}
			return false
		},
		OneOrMore:  func(m Matcher) bool { return recurse(m.Child(0)) },
		ZeroOrMore: always,
		Optional:   always,
		Test:       always,
		TestNot:    always,
		EOI:        always,
		Action:     always,
		Empty:      always,
		String:     func(m Matcher) bool { return len(m.Runes()) == 0 },
		Default:    func(Matcher) bool { return false },
	}
	return recurse(m)
}

// CanStartWith returns whether a successful match of m could begin with c.
//
// This is a static approximation: actions are assumed to fail, and a
// [KindTestNot] is assumed to succeed exactly when its operand cannot start
// with c.
func CanStartWith(m Matcher, c rune) bool {
	inProgress := make(map[Matcher]bool)
	var v *Visitor[bool]
	recurse := func(m Matcher) bool {
		if inProgress[m] {
			return false
		}
		inProgress[m] = true
		defer delete(inProgress, m)
		return Visit(m, v)
	}
	first := func(m Matcher) bool { return recurse(m.Child(0)) }
	v = &Visitor[bool]{
		Sequence: func(m Matcher) bool {
			for _, child := range m.Children() {
				if recurse(child) {
					return true
				}
				if !CanMatchEmpty(child) {
					return false
				}
			}
			return false
		},
		FirstOf: func(m Matcher) bool {
			for _, child := range m.Children() {
				if recurse(child) {
					return true
				}
			}
			return false
		},
		OneOrMore:  first,
		ZeroOrMore: first,
		Optional:   first,
		Test:       first,
		TestNot:    func(m Matcher) bool { return !recurse(m.Child(0)) },
		String: func(m Matcher) bool {
			chars := m.Runes()
			return len(chars) > 0 && chars[0] == c
		},
		Default: func(m Matcher) bool { return AcceptsChar(m, c) },
	}
	return recurse(m)
}

// MandatoryActions returns the actions that must run for m's effect on the
// operand stack to be accounted for, even if m did not match.
//
// These are the actions reachable from m along paths that every successful
// match takes: all elements of a sequence, the body of a [KindOneOrMore],
// and the first alternative of a [KindFirstOf]. Optional parts and
// predicates contribute nothing.
func MandatoryActions(m Matcher) []Matcher {
	var out []Matcher
	inProgress := make(map[Matcher]bool)
	var v *Visitor[struct{}]
	recurse := func(m Matcher) {
		if inProgress[m] {
			return
		}
		inProgress[m] = true
		defer delete(inProgress, m)
		Visit(m, v)
	}
	v = &Visitor[struct{}]{
		Sequence: func(m Matcher) struct{} {
			for _, child := range m.Children() {
				recurse(child)
			}
			return struct{}{}
		},
		FirstOf: func(m Matcher) struct{} {
			if m.Len() > 0 {
				recurse(m.Child(0))
			}
			return struct{}{}
		},
		OneOrMore: func(m Matcher) struct{} {
			recurse(m.Child(0))
			return struct{}{}
		},
		Action: func(m Matcher) struct{} {
			out = append(out, m)
			return struct{}{}
		},
	}
	recurse(m)
	return out
}
