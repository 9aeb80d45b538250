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
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/bufbuild/pegkit/grammar"
	"github.com/bufbuild/pegkit/input"
	"github.com/bufbuild/pegkit/stack"
)

// errTimeout is the panic value used to unwind a recovering run whose time is
// up. It is never wrapped in a [Fault].
var errTimeout = errors.New("parse: timed out")

// Context is the state of a single matcher activation.
//
// A run allocates one Context per nesting level of the grammar, not one per
// activation: each context keeps its child around and resets it for every
// sub-match. Contexts must not be retained after the call they were passed
// to returns.
//
// Context implements [grammar.ActionContext]. The context an action receives
// is that of the matcher containing it, which is what lets it look back at
// the element before it.
type Context struct {
	shared *state
	parent *Context
	sub    *Context
	level  int

	matcher grammar.Matcher // Zero once this context has retired.
	start   int
	current int
	char    rune
	values  stack.Stack

	nodes       []*Node // Children built so far.
	node        *Node   // The node built for this activation, if any.
	hasError    bool
	suppressed  bool
	inPredicate bool

	// For sequences: which child is being matched, and the span of the last
	// non-action child that matched.
	intTag             int
	lastStart, lastEnd int
}

var _ grammar.ActionContext = (*Context)(nil)

// state is shared by every context of a run.
type state struct {
	input   input.Input
	handler MatchHandler

	buildTree  bool
	fastString bool

	// Set while error recovery replays the actions of a sequence it is
	// skipping. Actions cannot fail in this mode.
	errorActionMode bool
}

// newRoot creates the context for the root of a run.
func newRoot(s *state, root grammar.Matcher, values stack.Stack) *Context {
	return &Context{
		shared:     s,
		matcher:    root,
		char:       s.input.CharAt(0),
		values:     values,
		suppressed: !s.buildTree || root.NodeSuppressed(),
	}
}

// Fault is the panic value of a run that was aborted by a panic, such as an
// action popping an empty operand stack.
type Fault struct {
	Path  *Path // The innermost matcher that was active.
	Index int   // The input index it had reached.
	Panic any   // What was originally panicked with.
}

// Error implements [error].
func (f *Fault) Error() string {
	return fmt.Sprintf("parse: panic in %v at index %d: %v", f.Path, f.Index, f.Panic)
}

// Unwrap returns the original panic value, if it was an error.
func (f *Fault) Unwrap() error {
	err, _ := f.Panic.(error)
	return err
}

// runRoot runs the root context, attaching the state of the walk to any
// panic that escapes it.
func (c *Context) runRoot() bool {
	defer func() {
		if panicked := recover(); panicked != nil {
			panic(c.fault(panicked))
		}
	}()
	return c.runMatcher()
}

func (c *Context) fault(panicked any) any {
	if _, ok := panicked.(*Fault); ok || panicked == errTimeout {
		return panicked
	}

	// Contexts do not retire when unwinding, so the active chain is still
	// marked by non-zero matchers.
	deepest := c
	for deepest.sub != nil && !deepest.sub.matcher.IsZero() {
		deepest = deepest.sub
	}
	return &Fault{Path: deepest.Path(), Index: deepest.current, Panic: panicked}
}

// subContext resets this context's child for matching m at the current
// position.
func (c *Context) subContext(m grammar.Matcher) *Context {
	sub := c.sub
	if sub == nil {
		sub = &Context{shared: c.shared, parent: c, level: c.level + 1}
		c.sub = sub
	}

	kind := c.matcher.Kind()
	sub.matcher = m
	sub.start = c.current
	sub.current = c.current
	sub.char = c.char
	sub.values = c.values
	sub.nodes = nil
	sub.node = nil
	sub.hasError = false
	sub.suppressed = c.suppressed || c.matcher.SubnodesSuppressed() || m.NodeSuppressed()
	sub.inPredicate = c.inPredicate || kind.IsPredicate()
	sub.intTag = 0
	return sub
}

// runMatcher matches this context's matcher through the run's handler. On
// success, the new position and operand stack are handed to the parent.
// Either way, the context retires.
func (c *Context) runMatcher() bool {
	ok := c.shared.handler.Match(c)
	if ok && c.parent != nil {
		c.parent.current = c.current
		c.parent.char = c.char
		c.parent.values = c.values
	}
	c.matcher = grammar.Matcher{}
	return ok
}

// advance moves the current position forward by n characters.
func (c *Context) advance(n int) {
	c.setIndex(c.current + n)
}

func (c *Context) setIndex(i int) {
	c.current = i
	c.char = c.shared.input.CharAt(i)
}

// createNode builds the parse tree node for a successful match and hands it
// to the parent.
func (c *Context) createNode() {
	if c.suppressed {
		return
	}
	if c.matcher.NodeSkipped() {
		if c.parent != nil {
			c.parent.nodes = append(c.parent.nodes, c.nodes...)
		}
		return
	}

	c.node = newNode(c.matcher, c.start, c.current, c.nodes, c.hasError)
	if !c.values.IsEmpty() {
		c.node.value = c.values.Peek()
	}
	if c.parent != nil {
		c.parent.nodes = append(c.parent.nodes, c.node)
	}
}

// Parent returns the context of the enclosing matcher, or nil for the root.
func (c *Context) Parent() *Context {
	return c.parent
}

// IsRoot returns whether this is the context of the root matcher.
func (c *Context) IsRoot() bool {
	return c.parent == nil
}

// Path returns the path from the root to this context's matcher.
func (c *Context) Path() *Path {
	var parent *Path
	if c.parent != nil {
		parent = c.parent.Path()
	}
	return parent.Append(Element{Matcher: c.matcher, Start: c.start, Level: c.level})
}

// NodeSuppressed returns whether this activation will not build a node.
func (c *Context) NodeSuppressed() bool {
	return c.suppressed
}

// ClearNodeSuppression makes this activation, and all of its ancestors, build
// nodes.
func (c *Context) ClearNodeSuppression() {
	for ctx := c; ctx != nil && ctx.suppressed; ctx = ctx.parent {
		ctx.suppressed = false
	}
}

// Values implements [grammar.ActionContext].
func (c *Context) Values() *stack.Stack {
	return &c.values
}

// Input implements [grammar.ActionContext].
func (c *Context) Input() input.Input {
	return c.shared.input
}

// Matcher implements [grammar.ActionContext].
func (c *Context) Matcher() grammar.Matcher {
	return c.matcher
}

// Level implements [grammar.ActionContext].
func (c *Context) Level() int {
	return c.level
}

// StartIndex implements [grammar.ActionContext].
func (c *Context) StartIndex() int {
	return c.start
}

// CurrentIndex implements [grammar.ActionContext].
func (c *Context) CurrentIndex() int {
	return c.current
}

// CurrentChar implements [grammar.ActionContext].
func (c *Context) CurrentChar() rune {
	return c.char
}

// InPredicate implements [grammar.ActionContext].
func (c *Context) InPredicate() bool {
	return c.inPredicate
}

// InErrorRecovery implements [grammar.ActionContext].
func (c *Context) InErrorRecovery() bool {
	return c.shared.errorActionMode
}

// HasError implements [grammar.ActionContext].
func (c *Context) HasError() bool {
	return c.hasError
}

// MarkError implements [grammar.ActionContext].
func (c *Context) MarkError() {
	for ctx := c; ctx != nil && !ctx.hasError; ctx = ctx.parent {
		ctx.hasError = true
	}
}

// Matched implements [grammar.ActionContext].
func (c *Context) Matched() string {
	start, end := c.lookback()
	if c.hasError {
		return cleanText(c.shared.input, start, end)
	}
	return c.shared.input.Extract(start, end)
}

// MatchedStart implements [grammar.ActionContext].
func (c *Context) MatchedStart() int {
	start, _ := c.lookback()
	return start
}

// MatchedEnd implements [grammar.ActionContext].
func (c *Context) MatchedEnd() int {
	_, end := c.lookback()
	return end
}

// MatchedChar implements [grammar.ActionContext].
//
// While error recovery is replaying actions, an empty match yields 0 rather
// than panicking.
func (c *Context) MatchedChar() rune {
	r, n := utf8.DecodeRuneInString(c.Matched())
	if n == 0 {
		if c.shared.errorActionMode {
			return 0
		}
		panic(fmt.Sprintf("parse: %v: MatchedChar called after an empty match", c.matcher))
	}
	return r
}

// Position implements [grammar.ActionContext].
func (c *Context) Position() input.Position {
	return c.shared.input.Position(c.current)
}

// lookback returns the span of the element before the running action.
func (c *Context) lookback() (start, end int) {
	if c.matcher.Kind() != grammar.KindSequence || c.intTag == 0 {
		if c.shared.errorActionMode {
			return c.current, c.current
		}
		panic(fmt.Sprintf(
			"parse: %v: the matched text is only available to an action in a sequence, after its first element",
			c.matcher))
	}
	return c.lastStart, c.lastEnd
}
