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

	"github.com/bufbuild/pegkit/grammar"
)

// Evaluate performs the match of this context's matcher, running its
// children through the handler of the run. A [MatchHandler] calls this to
// do the actual matching.
func (c *Context) Evaluate() bool {
	m := c.matcher
	switch kind := m.Kind(); kind {
	case grammar.KindSequence:
		c.lastStart, c.lastEnd = c.current, c.current
		for i, child := range m.Children() {
			c.intTag = i
			start := c.current
			if !c.subContext(child).runMatcher() {
				return false
			}
			if child.Kind() != grammar.KindAction {
				c.lastStart, c.lastEnd = start, c.current
			}
		}
		c.createNode()
		return true

	case grammar.KindFirstOf:
		for _, child := range m.Children() {
			if c.subContext(child).runMatcher() {
				c.createNode()
				return true
			}
		}
		return false

	case grammar.KindOneOrMore, grammar.KindZeroOrMore:
		body := m.Child(0)
		if kind == grammar.KindOneOrMore && !c.subContext(body).runMatcher() {
			return false
		}
		for {
			// An iteration that consumes nothing would repeat forever.
			before := c.current
			if !c.subContext(body).runMatcher() || c.current == before {
				break
			}
		}
		c.createNode()
		return true

	case grammar.KindOptional:
		c.subContext(m.Child(0)).runMatcher()
		c.createNode()
		return true

	case grammar.KindTest, grammar.KindTestNot:
		current, char, values := c.current, c.char, c.values
		ok := c.subContext(m.Child(0)).runMatcher()
		c.current, c.char, c.values = current, char, values
		return ok == (kind == grammar.KindTest)

	case grammar.KindChar, grammar.KindCharIgnoreCase, grammar.KindCharRange,
		grammar.KindAnyOf, grammar.KindAny, grammar.KindEOI:
		if !grammar.AcceptsChar(m, c.char) {
			return false
		}
		if kind != grammar.KindEOI {
			c.advance(1)
		}
		c.createNode()
		return true

	case grammar.KindString:
		if c.shared.fastString {
			chars := m.Runes()
			if !c.shared.input.Test(c.current, chars) {
				return false
			}
			c.advance(len(chars))
		} else {
			for _, child := range m.Children() {
				if !c.subContext(child).runMatcher() {
					return false
				}
			}
		}
		c.createNode()
		return true

	case grammar.KindAction:
		if c.inPredicate && !m.RunsInPredicate() {
			return true
		}
		return c.runAction(m.Action())

	case grammar.KindEmpty:
		c.createNode()
		return true

	case grammar.KindNothing:
		return false

	default:
		panic(fmt.Sprintf("parse: cannot evaluate %v matcher %v", kind, m))
	}
}

// runAction runs an action in the context of the matcher that contains it.
// Changes it makes to the operand stack are discarded if it fails.
func (c *Context) runAction(action grammar.Action) bool {
	actx := c.parent
	if actx == nil {
		actx = c
	}

	snapshot := actx.values.Snapshot()
	ok := action(actx)
	if !ok && !c.shared.errorActionMode {
		actx.values.Restore(snapshot)
		return false
	}
	c.values = actx.values
	return true
}
