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
	"slices"
	"time"

	"github.com/tliron/commonlog"

	"github.com/bufbuild/pegkit/grammar"
	"github.com/bufbuild/pegkit/input"
	"github.com/bufbuild/pegkit/stack"
)

var log = commonlog.GetLogger("pegkit.parse")

// Recovering matches an input, correcting errors in it as they are found,
// so that any finite input produces a parse tree.
//
// Each error is corrected by the first of these that lets the parse get
// further than the error:
//
//  1. Deleting the offending character.
//  2. Inserting a character that one of the failed matchers expects.
//  3. Replacing the offending character with such a character.
//
// Otherwise, the innermost sequence that failed is abandoned: its remaining
// actions are run, and input is skipped until something that can follow the
// sequence.
//
// Corrections are recorded as sentinel characters spliced into an
// [input.Mutable], which becomes the Input of the result. Every correction
// also produces a [ParseError].
type Recovering struct {
	Root   grammar.Matcher
	Values stack.Stack

	// If positive, recovery gives up after this long and returns a
	// [*TimeoutError]. Recovery also stops if the context passed to Run is
	// done.
	Timeout time.Duration
}

// Run implements [Runner].
func (r Recovering) Run(ctx context.Context, in input.Input) (result *Result, err error) {
	basic, _ := Basic{Root: r.Root, Values: r.Values}.Run(ctx, in)
	if basic.Matched {
		return basic, nil
	}

	rec := &recovery{
		ctx:    ctx,
		root:   r.Root,
		values: r.Values,
		buf:    input.NewMutable(in),
	}
	if r.Timeout > 0 {
		rec.deadline = time.Now().Add(r.Timeout)
	}

	defer func() {
		if panicked := recover(); panicked != nil {
			if panicked != errTimeout {
				panic(panicked)
			}
			basic.Errors = rec.errors
			result, err = nil, &TimeoutError{Result: basic, Cause: ctx.Err()}
		}
	}()
	return rec.run(), nil
}

// recovery is the state of a single [Recovering] run.
type recovery struct {
	ctx      context.Context
	deadline time.Time

	root   grammar.Matcher
	values stack.Stack
	buf    *input.Mutable
	errors []*ParseError

	// Set once resynchronizing fails to get past an error. From then on, a
	// failing root skips the rest of the input.
	skipRest bool
}

func (r *recovery) run() *Result {
	for e := r.locate(); e >= 0; {
		r.checkTimeout()
		err := r.report(e)
		r.errors = append(r.errors, err)
		e = r.fix(e, err.Failed)
	}

	c, ok := r.walk(&recoverer{r}, true)
	result := &Result{Matched: ok, Errors: r.errors, Input: r.buf, Values: r.values}
	if ok {
		result.Root = c.node
		result.Values = c.values
	}
	return result
}

// walk runs the grammar over the corrected input.
func (r *recovery) walk(handler MatchHandler, buildTree bool) (*Context, bool) {
	return match(&state{input: r.buf, handler: handler, buildTree: buildTree}, r.root, r.values)
}

// locate returns the index of the first error in the corrected input, or -1
// if there is none.
func (r *recovery) locate() int {
	loc := &locator{inner: &recoverer{r}}
	if _, ok := r.walk(loc, false); ok {
		return -1
	}
	return loc.errorIndex
}

// report finds out what failed at the error at e.
func (r *recovery) report(e int) *ParseError {
	rep := newReporter(&recoverer{r}, e)
	r.walk(rep, false)
	return rep.parseError(r.buf)
}

// fix corrects the error at e, and returns the index of the next error, or
// -1 if there are no more.
//
// Candidate corrections are compared by where the next error ends up, in
// terms of the input without the candidate's sentinels.
func (r *recovery) fix(e int, failed []*Path) int {
	buf := r.buf
	atEOI := buf.CharAt(e) == input.EOI

	delNext := -1
	if !atEOI {
		buf.Insert(e, input.Del)
		q := r.locate()
		if q < 0 {
			r.commit("deleted a character", e, 1)
			return -1
		}
		buf.Undo(e)
		delNext = unshift(q, e, 1)
	}

	insChar, next, ok := r.tryInsertions(e, failed)
	if ok && next < 0 {
		r.insert(e, insChar)
		r.commit("inserted "+input.Escape(insChar), e, 2)
		return -1
	}
	insNext := -1
	if ok {
		insNext = unshift(next, e, 2)
	}

	var repChar rune
	repNext := -1
	if !atEOI {
		buf.Insert(e, input.Del)
		c, q, found := r.tryInsertions(e+2, failed)
		if found && q < 0 {
			r.insert(e+2, c)
			r.commit("replaced a character with "+input.Escape(c), e, 1)
			shiftErrors(r.errors, e+2, 2)
			return -1
		}
		buf.Undo(e)
		if found {
			repChar, repNext = c, unshift(q, e, 3)
		}
	}

	// Prefer deletion, then insertion, then replacement.
	switch {
	case delNext > e && delNext >= insNext && delNext >= repNext:
		buf.Insert(e, input.Del)
		r.commit("deleted a character", e, 1)
	case insNext > e && insNext >= repNext:
		r.insert(e, insChar)
		r.commit("inserted "+input.Escape(insChar), e, 2)
	case repNext > e:
		buf.Insert(e, input.Del)
		r.insert(e+2, repChar)
		r.commit("replaced a character with "+input.Escape(repChar), e, 1)
		shiftErrors(r.errors, e+2, 2)
	default:
		// Nothing gets past the error; skip over it instead.
		buf.Insert(e, input.Resync)
		log.Debugf("%s: resynchronizing", buf.Position(e))
		q := r.locate()
		if q >= 0 && q <= e {
			log.Debugf("%s: could not resynchronize, skipping the rest of the input", buf.Position(e))
			buf.Undo(e)
			r.skipRest = true
			r.errors[len(r.errors)-1].End = buf.Len()
			return -1
		}
		return q
	}
	return r.locate()
}

// tryInsertions tries inserting the starter character of each failed
// single-character matcher at at. It returns the character that got the
// parse furthest, and the index of the next error with it in place.
//
// Returns false if there was nothing to try.
func (r *recovery) tryInsertions(at int, failed []*Path) (best rune, next int, ok bool) {
	var tried []rune
	for _, path := range failed {
		if throughTestNot(path) {
			continue
		}
		c, canStart := grammar.StarterChar(path.Head().Matcher)
		if !canStart || c == input.EOI || slices.Contains(tried, c) {
			continue
		}
		tried = append(tried, c)

		r.insert(at, c)
		q := r.locate()
		r.buf.Undo(at)
		r.buf.Undo(at)

		if q < 0 {
			return c, -1, true
		}
		if !ok || q > next {
			best, next, ok = c, q, true
		}
	}
	return best, next, ok
}

// insert splices c into the input at at, marked as inserted.
func (r *recovery) insert(at int, c rune) {
	r.buf.Insert(at, c)
	r.buf.Insert(at, input.Ins)
}

// commit logs a correction made at e, and shifts the errors found so far
// past the w characters inserted there.
func (r *recovery) commit(what string, e, w int) {
	log.Debugf("%s: %s", r.buf.Position(e), what)
	shiftErrors(r.errors, e, w)
}

func (r *recovery) checkTimeout() {
	if !r.deadline.IsZero() && time.Now().After(r.deadline) {
		panic(errTimeout)
	}
	if r.ctx.Err() != nil {
		panic(errTimeout)
	}
}

// shiftErrors moves the errors at or after i right by w characters, so that
// they keep referring to the same text after w characters are inserted at i.
func shiftErrors(errs []*ParseError, i, w int) {
	for _, err := range errs {
		switch {
		case err.Start >= i:
			err.Start += w
			err.End += w
			err.shift += w
		case err.End > i:
			err.End += w
		}
	}
}

// unshift maps an index q in an input with w characters inserted at e back
// to the input without them.
func unshift(q, e, w int) int {
	if q >= e+w {
		return q - w
	}
	return min(q, e)
}

// recoverer is the [MatchHandler] that interprets the sentinels spliced into
// the input by a [recovery].
type recoverer struct {
	r *recovery
}

func (h *recoverer) Match(c *Context) bool {
	m := c.matcher
	if grammar.IsSingleChar(m) {
		switch c.char {
		case input.Del:
			return h.skip(c, 2, true)
		case input.Ins:
			return h.skip(c, 1, false)
		}
		return c.Evaluate()
	}

	if c.Evaluate() {
		return true
	}
	if c.inPredicate || !resyncable(c) {
		return false
	}

	h.r.checkTimeout()
	switch c.char {
	case input.Resync, input.ResyncStart, input.ResyncEOI:
		h.resync(c)
		return true
	}
	if c.IsRoot() && h.r.skipRest {
		c.MarkError()
		if c.shared.buildTree {
			c.ClearNodeSuppression()
		}
		c.setIndex(h.r.buf.Len())
		c.createNode()
		return true
	}
	return false
}

// resyncable returns whether a failed match of c may be completed by
// skipping input. Strings count as sequences of characters.
func resyncable(c *Context) bool {
	switch c.matcher.Kind() {
	case grammar.KindSequence, grammar.KindString:
		return true
	default:
		return c.IsRoot()
	}
}

// skip steps over a deletion or insertion marker, if the matcher of c
// matches what comes after it.
func (h *recoverer) skip(c *Context, n int, deletion bool) bool {
	start := c.current
	c.advance(n)
	if !h.probe(c) {
		c.setIndex(start)
		return false
	}

	c.start = c.current
	switch {
	case !deletion:
		c.MarkError()
	case c.parent != nil:
		c.parent.MarkError()
	default:
		c.MarkError()
	}
	return h.Match(c)
}

// probe returns whether the matcher of c matches at the current index,
// without consuming anything or building nodes.
func (h *recoverer) probe(c *Context) bool {
	current, char, values := c.current, c.char, c.values
	sub := c.subContext(c.matcher)
	sub.inPredicate = true
	sub.suppressed = true
	ok := sub.runMatcher()
	c.current, c.char, c.values = current, char, values
	return ok
}

// resync completes the failed sequence of c by skipping input.
//
// The first time around, c is at a Resync marker, and the input is skipped
// up to the first character that can follow the sequence; the marker is
// then turned into a pair of markers around the skipped text, or into a
// marker that skips to the end of input. Later runs find the pair and skip
// straight over it.
func (h *recoverer) resync(c *Context) {
	s := c.shared
	c.MarkError()
	if s.buildTree {
		c.ClearNodeSuppression()
	}

	// The rest of the sequence will not run, but its actions must, so the
	// operand stack has the shape that the actions after it expect.
	if m := c.matcher; m.Kind() == grammar.KindSequence {
		s.errorActionMode = true
		for j := c.intTag; j < m.Len(); j++ {
			c.intTag = j
			for _, action := range grammar.MandatoryActions(m.Child(j)) {
				c.subContext(action).runMatcher()
			}
		}
		s.errorActionMode = false
	}

	buf := h.r.buf
	switch c.char {
	case input.Resync:
		marker := c.current
		c.advance(1)
		follow := followMatchers(c)
		for c.char != input.EOI && !slices.ContainsFunc(follow, func(m grammar.Matcher) bool {
			return grammar.CanStartWith(m, c.char)
		}) {
			c.advance(1)
		}

		if c.char == input.EOI {
			buf.Replace(marker, input.ResyncEOI)
		} else {
			buf.Insert(c.current, input.ResyncEnd)
			buf.Replace(marker, input.ResyncStart)
			c.setIndex(c.current + 1)
		}
		for _, err := range h.r.errors {
			if err.Start == marker {
				err.End = c.current
			}
		}

	case input.ResyncStart:
		for c.char != input.ResyncEnd && c.char != input.EOI {
			c.advance(1)
		}
		c.advance(1)

	case input.ResyncEOI:
		c.setIndex(buf.Len())
	}

	c.createNode()
}

// followMatchers returns the matchers that could match right after the
// matcher of c.
func followMatchers(c *Context) []grammar.Matcher {
	var follow []grammar.Matcher
	for ctx := c.parent; ctx != nil; ctx = ctx.parent {
		m := ctx.matcher
		switch m.Kind() {
		case grammar.KindSequence:
			for j := ctx.intTag + 1; j < m.Len(); j++ {
				child := m.Child(j)
				follow = append(follow, child)
				if !grammar.CanMatchEmpty(child) {
					return follow
				}
			}
		case grammar.KindOneOrMore, grammar.KindZeroOrMore:
			follow = append(follow, m.Child(0))
		}
	}
	return follow
}
