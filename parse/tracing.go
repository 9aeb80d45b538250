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
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bufbuild/pegkit/grammar"
	"github.com/bufbuild/pegkit/input"
	"github.com/bufbuild/pegkit/stack"
)

// Tracing matches an input like [Basic], describing every matcher
// activation as it finishes.
//
// Each activation produces a line like
//
//	sum/product/number/'0'..'9', 1:3..1:4, matched
//
// which is written to Out, or logged at debug level if Out is nil.
type Tracing struct {
	Root   grammar.Matcher
	Values stack.Stack

	// If set, only activations whose path satisfies Filter are traced.
	Filter func(*Path) bool
	Out    io.Writer
}

// Run implements [Runner].
func (r Tracing) Run(_ context.Context, in input.Input) (*Result, error) {
	t := &tracer{inner: Evaluator, filter: r.Filter, out: r.Out}
	s := &state{input: in, handler: t, buildTree: true, fastString: true}
	result := Basic{Values: r.Values}.result(match(s, r.Root, r.Values))
	return result, t.err
}

// OnlyRule returns a tracing filter that accepts activations at or under
// the matcher with the given name.
func OnlyRule(name string) func(*Path) bool {
	return func(p *Path) bool {
		for q := p; q != nil; q = q.parent {
			if q.elem.Matcher.Name() == name {
				return true
			}
		}
		return false
	}
}

type tracer struct {
	inner  MatchHandler
	filter func(*Path) bool
	out    io.Writer
	err    error
}

func (t *tracer) Match(c *Context) bool {
	ok := t.inner.Match(c)

	path := c.Path()
	if t.filter != nil && !t.filter(path) {
		return ok
	}

	var line strings.Builder
	in := c.shared.input
	fmt.Fprintf(&line, "%v, %v..%v, ", path, in.Position(c.start), in.Position(c.current))
	if ok {
		line.WriteString("matched")
	} else {
		line.WriteString("failed")
	}
	if c.char != input.EOI {
		fmt.Fprintf(&line, " at %q", input.Escape(c.char))
	}

	switch {
	case t.out == nil:
		log.Debug(line.String())
	case t.err == nil:
		line.WriteByte('\n')
		_, t.err = io.WriteString(t.out, line.String())
	}
	return ok
}
