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

package parse

import (
	"fmt"
	"strings"

	"github.com/bufbuild/pegkit/grammar"
	"github.com/bufbuild/pegkit/input"
)

// Node is a node of a parse tree: a successful match of a matcher that was
// not suppressed.
//
// Nodes are immutable once a run returns.
type Node struct {
	matcher    grammar.Matcher
	start, end int
	value      any
	hasError   bool

	children []*Node
	inline   [1]*Node // Backing storage for children, when there is one.
}

func newNode(m grammar.Matcher, start, end int, children []*Node, hasError bool) *Node {
	n := &Node{matcher: m, start: start, end: end, hasError: hasError}
	switch len(children) {
	case 0:
	case 1:
		n.inline[0] = children[0]
		n.children = n.inline[:]
	default:
		n.children = children
	}
	return n
}

// Matcher returns the matcher that built this node.
func (n *Node) Matcher() grammar.Matcher {
	return n.matcher
}

// Label returns the label of this node's matcher.
func (n *Node) Label() string {
	return n.matcher.Name()
}

// Start returns the index of the first character this node matched.
func (n *Node) Start() int {
	return n.start
}

// End returns the index just past the last character this node matched.
func (n *Node) End() int {
	return n.end
}

// Children returns this node's children, in input order. The returned slice
// must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Value returns the value on top of the operand stack when this node was
// built, or nil if the stack was empty.
func (n *Node) Value() any {
	return n.value
}

// HasError returns whether this node, or any node under it, matched input
// that error recovery had to correct.
func (n *Node) HasError() bool {
	return n.hasError
}

// Text returns the text this node matched in in, which must be the input
// the node was built from.
//
// For nodes with errors, the text has recovery's corrections applied:
// deleted and skipped characters are left out, inserted ones are kept.
func (n *Node) Text(in input.Input) string {
	if !n.hasError {
		return in.Extract(n.start, n.end)
	}
	return cleanText(in, n.start, n.end)
}

// String implements [fmt.Stringer].
func (n *Node) String() string {
	var errMark string
	if n.hasError {
		errMark = " E"
	}
	return fmt.Sprintf("[%s%s] %d..%d", n.Label(), errMark, n.start, n.end)
}

// cleanText extracts [start, end) from in, interpreting the sentinels that
// error recovery splices in.
func cleanText(in input.Input, start, end int) string {
	var out strings.Builder
	for i := start; i < end; i++ {
		switch c := in.CharAt(i); c {
		case input.Del:
			i++ // Also skip the deleted character.
		case input.Ins, input.EOI:
		case input.ResyncStart:
			for i++; i < end && in.CharAt(i) != input.ResyncEnd; i++ {
			}
		case input.ResyncEOI:
			return out.String()
		case input.Resync, input.ResyncEnd:
			panic(fmt.Sprintf("parse: unbalanced %s at index %d", input.Escape(c), i))
		default:
			out.WriteRune(c)
		}
	}
	return out.String()
}
