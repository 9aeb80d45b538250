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

import (
	"fmt"
	"iter"
	"strings"

	"github.com/bufbuild/pegkit/charset"
	"github.com/bufbuild/pegkit/input"
	"github.com/bufbuild/pegkit/internal/arena"
)

// Matcher is a node in a [Graph].
//
// A Matcher is a handle: it is a small value that can be compared with ==,
// and copying it does not copy the underlying node. The zero Matcher refers
// to nothing; see [Matcher.IsZero].
type Matcher struct {
	g *Graph
	p arena.Pointer[node]
}

// IsZero returns whether this is the zero Matcher.
func (m Matcher) IsZero() bool {
	return m.g == nil
}

// Graph returns the graph this matcher belongs to.
func (m Matcher) Graph() *Graph {
	return m.g
}

// ID returns a number that uniquely identifies this matcher within its graph.
func (m Matcher) ID() int {
	return int(m.p)
}

// Kind returns what kind of matcher this is.
func (m Matcher) Kind() Kind {
	return m.node().kind
}

// Len returns the number of children this matcher has.
func (m Matcher) Len() int {
	if m.IsZero() {
		return 0
	}
	return len(m.node().children)
}

// Child returns the nth child of this matcher.
func (m Matcher) Child(n int) Matcher {
	return Matcher{m.g, m.node().children[n]}
}

// Children returns an iterator over the children of this matcher, along with
// their indices.
func (m Matcher) Children() iter.Seq2[int, Matcher] {
	return func(yield func(int, Matcher) bool) {
		for i := range m.Len() {
			if !yield(i, m.Child(i)) {
				return
			}
		}
	}
}

// Target returns the matcher a [KindProxy] stands in for, or the zero
// Matcher if it has not been resolved.
func (m Matcher) Target() Matcher {
	n := m.node()
	if n.kind != KindProxy || n.target.Nil() {
		return Matcher{}
	}
	return Matcher{m.g, n.target}
}

// Char returns the character a [KindChar] matcher matches. For
// [KindCharIgnoreCase] it returns the lowercase form, and for [KindCharRange]
// the low end of the range.
func (m Matcher) Char() rune {
	return m.node().lo
}

// Range returns the bounds of a [KindChar], [KindCharIgnoreCase] or
// [KindCharRange] matcher. For [KindCharIgnoreCase], these are the lower and
// upper case forms.
func (m Matcher) Range() (lo, hi rune) {
	n := m.node()
	return n.lo, n.hi
}

// Set returns the characters a [KindAnyOf] matcher matches.
func (m Matcher) Set() charset.Set {
	return m.node().set
}

// Runes returns the characters of a [KindString] matcher.
//
// The returned slice must not be modified.
func (m Matcher) Runes() []rune {
	return m.node().chars
}

// Action returns the function a [KindAction] matcher calls.
func (m Matcher) Action() Action {
	return m.node().action
}

// NodeSuppressed returns whether this matcher never produces parse tree
// nodes, for itself or anything below it.
func (m Matcher) NodeSuppressed() bool {
	return m.node().flags&flagNodeSuppressed != 0
}

// SubnodesSuppressed returns whether this matcher's children never produce
// parse tree nodes, although it may.
func (m Matcher) SubnodesSuppressed() bool {
	return m.node().flags&flagSubnodesSuppressed != 0
}

// NodeSkipped returns whether this matcher's node is elided from the parse
// tree, with its children attached to its parent instead.
func (m Matcher) NodeSkipped() bool {
	return m.node().flags&flagNodeSkipped != 0
}

// RunsInPredicate returns whether a [KindAction] matcher still runs inside
// a [KindTest] or [KindTestNot].
func (m Matcher) RunsInPredicate() bool {
	return m.node().flags&flagRunInPredicate != 0
}

// HasCustomLabel returns whether this matcher was given a label with
// [Matcher.Label].
func (m Matcher) HasCustomLabel() bool {
	return m.node().flags&flagCustomLabel != 0
}

// Name returns this matcher's label.
//
// If no label was set explicitly, one is derived from the matcher's kind and
// contents, such as 'a' for a character or "abc" for a string.
func (m Matcher) Name() string {
	if m.IsZero() {
		return "<nil>"
	}
	n := m.node()
	switch {
	case n.flags&flagCustomLabel != 0:
		return n.label
	case n.kind == KindTest:
		return "&" + m.Child(0).Name()
	case n.kind == KindTestNot:
		return "!" + m.Child(0).Name()
	}
	return n.displayLabel()
}

// Tag returns the value in this matcher's tag slot.
func (m Matcher) Tag() any {
	return m.node().tag
}

// SetTag sets the value in this matcher's tag slot.
//
// The tag slot is the one piece of a finalized graph that may be written
// to. It is not synchronized: only one goroutine may use it at a time.
func (m Matcher) SetTag(tag any) {
	m.node().tag = tag
}

// String implements [fmt.Stringer].
func (m Matcher) String() string {
	return m.Name()
}

// Label sets this matcher's label, and returns it.
func (m Matcher) Label(label string) Matcher {
	n := m.mutable()
	n.label = label
	n.flags |= flagCustomLabel
	return m
}

// SuppressNode marks this matcher as producing no parse tree nodes, and
// returns it.
func (m Matcher) SuppressNode() Matcher {
	m.mutable().flags |= flagNodeSuppressed
	return m
}

// SuppressSubnodes marks this matcher's children as producing no parse tree
// nodes, and returns it.
func (m Matcher) SuppressSubnodes() Matcher {
	m.mutable().flags |= flagSubnodesSuppressed
	return m
}

// SkipNode marks this matcher as being elided from the parse tree, and
// returns it.
func (m Matcher) SkipNode() Matcher {
	m.mutable().flags |= flagNodeSkipped
	return m
}

// RunInPredicate marks an action as running even inside a predicate, and
// returns it.
func (m Matcher) RunInPredicate() Matcher {
	n := m.mutable()
	if n.kind != KindAction {
		panic(fmt.Sprintf("grammar: RunInPredicate on a %v matcher", n.kind))
	}
	n.flags |= flagRunInPredicate
	return m
}

func (m Matcher) node() *node {
	if m.IsZero() {
		panic("grammar: use of zero Matcher")
	}
	return m.g.nodes.Deref(m.p)
}

func (m Matcher) mutable() *node {
	if m.IsZero() {
		panic("grammar: use of zero Matcher")
	}
	m.g.checkMutable()
	return m.node()
}

// displayLabel derives a label from a node's contents. Derived labels are
// rebuilt on every call, since a finalized graph must not be written to.
func (n *node) displayLabel() string {
	switch n.kind {
	case KindChar:
		return quoteChar(n.lo)
	case KindCharIgnoreCase:
		return "'" + input.Escape(n.lo) + "/" + input.Escape(n.hi) + "'"
	case KindCharRange:
		return quoteChar(n.lo) + ".." + quoteChar(n.hi)
	case KindAnyOf:
		return n.set.String()
	case KindAny:
		return "ANY"
	case KindEOI:
		return "EOI"
	case KindString:
		return `"` + input.EscapeString(string(n.chars)) + `"`
	case KindEmpty:
		return "EMPTY"
	case KindNothing:
		return "NOTHING"
	default:
		return n.kind.String()
	}
}

func quoteChar(c rune) string {
	var b strings.Builder
	b.WriteByte('\'')
	b.WriteString(input.Escape(c))
	b.WriteByte('\'')
	return b.String()
}
