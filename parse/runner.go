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

	"github.com/bufbuild/pegkit/grammar"
	"github.com/bufbuild/pegkit/input"
	"github.com/bufbuild/pegkit/stack"
)

// Runner runs a grammar over inputs.
//
// Runners are plain values configured by their fields, and may be used
// concurrently as long as their grammar is finalized.
type Runner interface {
	// Run matches in. A mismatch is not an error: it is reported through
	// the result. Only [Recovering] ever returns an error.
	Run(ctx context.Context, in input.Input) (*Result, error)
}

// Result is the outcome of a run.
type Result struct {
	Matched bool
	Root    *Node       // The root of the parse tree, if one was built.
	Values  stack.Stack // The final operand stack, if Matched.
	Errors  []*ParseError

	// The input the tree and errors refer to. For [Recovering], this is the
	// corrected input, not the one originally passed in.
	Input input.Input
}

// HasErrors returns whether the run found any errors.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Value returns the value on top of the final operand stack, or nil if it is
// empty.
func (r *Result) Value() any {
	if r.Values.IsEmpty() {
		return nil
	}
	return r.Values.Peek()
}

// Basic matches an input without any error handling: a failed run says only
// that it failed.
type Basic struct {
	Root   grammar.Matcher
	Values stack.Stack // The operand stack to start from.
	NoTree bool        // Skip building the parse tree.
}

// Run implements [Runner].
func (r Basic) Run(_ context.Context, in input.Input) (*Result, error) {
	s := &state{input: in, handler: Evaluator, buildTree: !r.NoTree, fastString: true}
	return r.result(match(s, r.Root, r.Values)), nil
}

func (r Basic) result(c *Context, ok bool) *Result {
	result := &Result{Matched: ok, Input: c.shared.input, Values: r.Values}
	if ok {
		result.Root = c.node
		result.Values = c.values
	}
	return result
}

// ErrorLocating matches an input and, if that fails, reports where. The
// error is at the furthest index any matcher reached.
//
// It builds no parse tree: Result.Root is always nil.
type ErrorLocating struct {
	Root   grammar.Matcher
	Values stack.Stack
}

// Run implements [Runner].
func (r ErrorLocating) Run(_ context.Context, in input.Input) (*Result, error) {
	loc := &locator{inner: Evaluator}
	s := &state{input: in, handler: loc}
	result := Basic{Values: r.Values}.result(match(s, r.Root, r.Values))
	if !result.Matched {
		result.Errors = append(result.Errors, &ParseError{
			Kind:  ErrorGeneric,
			Start: loc.errorIndex,
			End:   loc.errorIndex,
			Input: in,
		})
	}
	return result, nil
}

// ErrorReporting matches an input that is known to have an error at
// ErrorIndex, and reports which matchers failed there.
type ErrorReporting struct {
	Root       grammar.Matcher
	Values     stack.Stack
	ErrorIndex int
}

// Run implements [Runner].
func (r ErrorReporting) Run(_ context.Context, in input.Input) (*Result, error) {
	rep := newReporter(Evaluator, r.ErrorIndex)
	s := &state{input: in, handler: rep, buildTree: true}
	result := Basic{Values: r.Values}.result(match(s, r.Root, r.Values))
	if !result.Matched {
		result.Errors = append(result.Errors, rep.parseError(in))
	}
	return result, nil
}

// Reporting matches an input and, if that fails, reports the first error
// along with what was expected there.
//
// Inputs that match cost a single run. Inputs that do not are run twice
// more: once to locate the error, and once to find out what failed there.
type Reporting struct {
	Root   grammar.Matcher
	Values stack.Stack
}

// Run implements [Runner].
func (r Reporting) Run(ctx context.Context, in input.Input) (*Result, error) {
	result, _ := Basic{Root: r.Root, Values: r.Values}.Run(ctx, in)
	if result.Matched {
		return result, nil
	}

	located, _ := ErrorLocating(r).Run(ctx, in)
	if located.Matched {
		// Only possible if the grammar's actions are not deterministic.
		return located, nil
	}
	return ErrorReporting{
		Root:       r.Root,
		Values:     r.Values,
		ErrorIndex: located.Errors[0].Start,
	}.Run(ctx, in)
}

// match runs root over the input of s.
func match(s *state, root grammar.Matcher, values stack.Stack) (*Context, bool) {
	c := newRoot(s, root, values)
	return c, c.runRoot()
}
