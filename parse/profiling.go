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
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/petermattis/goid"

	"github.com/bufbuild/pegkit/grammar"
	"github.com/bufbuild/pegkit/input"
	"github.com/bufbuild/pegkit/stack"
)

// Profiling matches an input like [Basic], counting what each matcher does
// into Profile.
//
// While it runs, Profiling keeps its counters in the tag slots of the
// grammar's matchers. Only one goroutine at a time may profile a given
// grammar; a second one panics.
type Profiling struct {
	Root    grammar.Matcher
	Values  stack.Stack
	Profile *Profile
}

// Profile accumulates counters across [Profiling] runs.
//
// A zero Profile is ready to use.
type Profile struct {
	Runs    int
	Elapsed time.Duration

	counters map[grammar.Matcher]*Counters
}

// Counters are the counters of one matcher.
type Counters struct {
	Matcher grammar.Matcher

	Invocations int // Times the matcher was run.
	Matches     int // Times it matched.

	// Times it matched, or failed to match, at an index where it had already
	// done so during the same run. High counts point at rules that would
	// benefit from being restructured.
	Rematches, Remismatches int

	matched, mismatched map[int]struct{}
}

// Run implements [Runner].
func (r Profiling) Run(_ context.Context, in input.Input) (*Result, error) {
	g := r.Root.Graph()
	release := claimTags(g)
	defer release()

	p := r.Profile
	if p.counters == nil {
		p.counters = make(map[grammar.Matcher]*Counters)
	}
	defer func() {
		for m, c := range p.counters {
			m.SetTag(nil)
			c.matched, c.mismatched = nil, nil
		}
	}()

	start := time.Now()
	s := &state{input: in, handler: &profiler{p, Evaluator}, buildTree: true, fastString: true}
	result := Basic{Values: r.Values}.result(match(s, r.Root, r.Values))

	p.Runs++
	p.Elapsed += time.Since(start)
	return result, nil
}

// Counters returns the counters of every matcher that ran, from the most
// invoked to the least.
func (p *Profile) Counters() []*Counters {
	counters := make([]*Counters, 0, len(p.counters))
	for _, c := range p.counters {
		counters = append(counters, c)
	}
	slices.SortFunc(counters, func(a, b *Counters) int {
		if n := cmp.Compare(b.Invocations, a.Invocations); n != 0 {
			return n
		}
		return cmp.Compare(a.Matcher.ID(), b.Matcher.ID())
	})
	return counters
}

// String formats the profile as a table.
func (p *Profile) String() string {
	var out strings.Builder
	fmt.Fprintf(&out, "%d runs in %v\n", p.Runs, p.Elapsed)
	fmt.Fprintf(&out, "%10s %10s %10s %10s  %s\n", "invoked", "matched", "rematched", "remismatch", "matcher")
	for _, c := range p.Counters() {
		fmt.Fprintf(&out, "%10d %10d %10d %10d  %s\n",
			c.Invocations, c.Matches, c.Rematches, c.Remismatches, c.Matcher.Name())
	}
	return out.String()
}

type profiler struct {
	profile *Profile
	inner   MatchHandler
}

func (p *profiler) Match(c *Context) bool {
	m, start := c.matcher, c.start
	counters, _ := m.Tag().(*Counters)
	if counters == nil {
		counters = p.profile.counters[m]
		if counters == nil {
			counters = &Counters{Matcher: m}
			p.profile.counters[m] = counters
		}
		counters.matched = make(map[int]struct{})
		counters.mismatched = make(map[int]struct{})
		m.SetTag(counters)
	}

	ok := p.inner.Match(c)
	counters.Invocations++
	seen := counters.mismatched
	if ok {
		counters.Matches++
		seen = counters.matched
	}
	if _, again := seen[start]; again {
		if ok {
			counters.Rematches++
		} else {
			counters.Remismatches++
		}
	}
	seen[start] = struct{}{}
	return ok
}

var tagOwners sync.Map // *grammar.Graph -> goroutine ID

// claimTags marks the tag slots of g as belonging to the calling goroutine
// until release is called.
func claimTags(g *grammar.Graph) (release func()) {
	id := goid.Get()
	owner, loaded := tagOwners.LoadOrStore(g, id)
	if !loaded {
		return func() { tagOwners.Delete(g) }
	}
	if owner.(int64) != id {
		panic(fmt.Sprintf("parse: the matcher tags of this grammar are in use by goroutine %d", owner))
	}
	return func() {}
}
