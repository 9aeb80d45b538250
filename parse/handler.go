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
	"github.com/bufbuild/pegkit/grammar"
	"github.com/bufbuild/pegkit/input"
)

// MatchHandler performs every matcher activation of a run.
//
// The simplest handler just calls [Context.Evaluate]. Handlers that wrap
// another handler can observe or alter each activation; this is how the
// runners of this package are built.
type MatchHandler interface {
	Match(c *Context) bool
}

// MatchHandlerFunc adapts a function into a [MatchHandler].
type MatchHandlerFunc func(c *Context) bool

// Match implements [MatchHandler].
func (f MatchHandlerFunc) Match(c *Context) bool {
	return f(c)
}

// Evaluator is the [MatchHandler] that evaluates every matcher as is.
var Evaluator MatchHandler = MatchHandlerFunc((*Context).Evaluate)

// locator tracks the furthest index any matcher reached. If a run fails,
// that is where the error is.
type locator struct {
	inner      MatchHandler
	errorIndex int
}

func (l *locator) Match(c *Context) bool {
	if !l.inner.Match(c) {
		return false
	}
	if c.current > l.errorIndex && !insideTestNot(c) {
		l.errorIndex = c.current
	}
	return true
}

// reporter records every single-character matcher that fails at a known
// error index.
//
// Matchers can fail at the error index long before the parse actually gets
// stuck there, for example in alternatives that are tried and abandoned. So
// if the error is not at the start of the input, recording only begins once
// some matcher has successfully reached it.
type reporter struct {
	inner      MatchHandler
	errorIndex int
	seeking    bool
	failed     []*Path
}

func newReporter(inner MatchHandler, errorIndex int) *reporter {
	return &reporter{inner: inner, errorIndex: errorIndex, seeking: errorIndex > 0}
}

func (r *reporter) Match(c *Context) bool {
	ok := r.inner.Match(c)
	if c.current == r.errorIndex {
		switch {
		case ok && r.seeking:
			r.seeking = false
		case !ok && !r.seeking && grammar.IsSingleChar(c.matcher):
			r.failed = append(r.failed, c.Path())
		}
	}
	return ok
}

// parseError returns the error the reporter found.
func (r *reporter) parseError(in input.Input) *ParseError {
	end := r.errorIndex
	if in.CharAt(end) != input.EOI {
		end++
	}
	return &ParseError{
		Kind:   ErrorInvalidInput,
		Start:  r.errorIndex,
		End:    end,
		Input:  in,
		Failed: r.failed,
	}
}

func insideTestNot(c *Context) bool {
	for ctx := c.parent; ctx != nil; ctx = ctx.parent {
		if ctx.matcher.Kind() == grammar.KindTestNot {
			return true
		}
	}
	return false
}

// throughTestNot returns whether any element of a path is a negative
// lookahead.
func throughTestNot(p *Path) bool {
	for q := p; q != nil; q = q.parent {
		if q.elem.Matcher.Kind() == grammar.KindTestNot {
			return true
		}
	}
	return false
}
