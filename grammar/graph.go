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
	"errors"
	"fmt"
	"unicode"

	"github.com/bufbuild/pegkit/charset"
	"github.com/bufbuild/pegkit/input"
	"github.com/bufbuild/pegkit/internal/arena"
)

var (
	// ErrUnresolved is returned by [Graph.Finalize] when a [Graph.Proxy] was
	// never given a target.
	ErrUnresolved = errors.New("unresolved proxy")

	// ErrCycle is returned by [Graph.Finalize] when a proxy resolves,
	// through other proxies, back to itself.
	ErrCycle = errors.New("proxy resolves to itself")
)

// Graph is a grammar: a set of matchers that refer to each other, possibly
// cyclically.
//
// A Graph is built by calling its constructor methods, and then sealed with
// [Graph.Finalize]. After that, the graph is read-only and may be shared by
// any number of concurrent parses. The only exception is the tag slot (see
// [Matcher.SetTag]), which belongs to instrumentation.
//
// A zero Graph is empty and ready to use.
type Graph struct {
	nodes     arena.Arena[node]
	finalized bool
}

type node struct {
	kind     Kind
	flags    flags
	label    string
	children []arena.Pointer[node]

	lo, hi rune   // Char, CharIgnoreCase, CharRange.
	chars  []rune // String.
	set    charset.Set
	action Action
	target arena.Pointer[node] // Proxy.

	tag any
}

type flags uint8

const (
	flagNodeSuppressed flags = 1 << iota
	flagSubnodesSuppressed
	flagNodeSkipped
	flagRunInPredicate
	flagCustomLabel
)

// New returns a new, empty graph.
func New() *Graph {
	return new(Graph)
}

// Len returns the number of matchers in this graph.
func (g *Graph) Len() int {
	return g.nodes.Len()
}

// Finalized returns whether [Graph.Finalize] has completed successfully.
func (g *Graph) Finalized() bool {
	return g.finalized
}

// Seq returns a matcher that matches each of ms in order.
func (g *Graph) Seq(ms ...Matcher) Matcher {
	return g.newNode(node{kind: KindSequence}, ms...)
}

// FirstOf returns a matcher that tries each of ms in order, from the same
// position, and succeeds with the first one that matches.
func (g *Graph) FirstOf(ms ...Matcher) Matcher {
	return g.newNode(node{kind: KindFirstOf}, ms...)
}

// OneOrMore returns a matcher that matches m as many times as possible, and
// at least once.
func (g *Graph) OneOrMore(m Matcher) Matcher {
	return g.newNode(node{kind: KindOneOrMore}, m)
}

// ZeroOrMore returns a matcher that matches m as many times as possible.
func (g *Graph) ZeroOrMore(m Matcher) Matcher {
	return g.newNode(node{kind: KindZeroOrMore}, m)
}

// Optional returns a matcher that matches m at most once.
func (g *Graph) Optional(m Matcher) Matcher {
	return g.newNode(node{kind: KindOptional}, m)
}

// Test returns a matcher that succeeds if m would match here, without
// consuming anything or producing parse tree nodes.
func (g *Graph) Test(m Matcher) Matcher {
	return g.newNode(node{kind: KindTest, flags: flagNodeSuppressed}, m)
}

// TestNot returns a matcher that succeeds if m would not match here.
func (g *Graph) TestNot(m Matcher) Matcher {
	return g.newNode(node{kind: KindTestNot, flags: flagNodeSuppressed}, m)
}

// Char returns a matcher for exactly c.
func (g *Graph) Char(c rune) Matcher {
	checkChar(c)
	return g.newNode(node{kind: KindChar, lo: c, hi: c})
}

// IgnoreCase returns a matcher for c in either case.
func (g *Graph) IgnoreCase(c rune) Matcher {
	checkChar(c)
	lo, hi := unicode.ToLower(c), unicode.ToUpper(c)
	if lo == hi {
		return g.Char(c)
	}
	return g.newNode(node{kind: KindCharIgnoreCase, lo: lo, hi: hi})
}

// Range returns a matcher for any character in [lo, hi].
func (g *Graph) Range(lo, hi rune) Matcher {
	checkChar(lo)
	checkChar(hi)
	if lo > hi {
		panic(fmt.Sprintf("grammar: empty range %q..%q", lo, hi))
	}
	if lo == hi {
		return g.Char(lo)
	}
	return g.newNode(node{kind: KindCharRange, lo: lo, hi: hi})
}

// AnyOf returns a matcher for any of the characters in chars.
func (g *Graph) AnyOf(chars string) Matcher {
	return g.CharSet(charset.Of([]rune(chars)...))
}

// NoneOf returns a matcher for any character not in chars.
func (g *Graph) NoneOf(chars string) Matcher {
	return g.CharSet(charset.AllBut([]rune(chars)...))
}

// CharSet returns a matcher for any character in set.
func (g *Graph) CharSet(set charset.Set) Matcher {
	chars := set.Chars()
	if !set.IsNegated() {
		for _, c := range chars {
			checkChar(c)
		}
		if len(chars) == 1 {
			return g.Char(chars[0])
		}
	}
	return g.newNode(node{kind: KindAnyOf, set: set})
}

// Any returns a matcher for any single character other than the end of input.
func (g *Graph) Any() Matcher {
	return g.newNode(node{kind: KindAny})
}

// EOI returns a matcher for the end of input.
func (g *Graph) EOI() Matcher {
	return g.newNode(node{kind: KindEOI})
}

// String returns a matcher for the exact string s.
//
// The resulting matcher has one [KindChar] child per character, whose
// nodes are always suppressed. These are only used when a parse needs to
// know exactly which character failed.
func (g *Graph) String(s string) Matcher {
	chars := []rune(s)
	children := make([]Matcher, len(chars))
	for i, c := range chars {
		children[i] = g.Char(c)
	}
	return g.newNode(node{
		kind:  KindString,
		flags: flagSubnodesSuppressed,
		chars: chars,
	}, children...)
}

// IgnoreCaseString returns a matcher for s, ignoring case.
func (g *Graph) IgnoreCaseString(s string) Matcher {
	var children []Matcher
	for _, c := range s {
		children = append(children, g.IgnoreCase(c))
	}
	return g.Seq(children...).
		SuppressSubnodes().
		Label(fmt.Sprintf("%q", s))
}

// Action returns a matcher that calls fn.
func (g *Graph) Action(fn Action) Matcher {
	if fn == nil {
		panic("grammar: nil action")
	}
	return g.newNode(node{kind: KindAction, action: fn})
}

// Empty returns a matcher that always succeeds without consuming anything.
func (g *Graph) Empty() Matcher {
	return g.newNode(node{kind: KindEmpty})
}

// Nothing returns a matcher that never succeeds.
func (g *Graph) Nothing() Matcher {
	return g.newNode(node{kind: KindNothing})
}

// Proxy returns a placeholder matcher, which may be used as a child before
// the matcher it stands in for has been built. Every proxy must be given a
// target with [Graph.Resolve] before the graph is finalized.
func (g *Graph) Proxy() Matcher {
	return g.newNode(node{kind: KindProxy})
}

// Resolve points proxy at target.
func (g *Graph) Resolve(proxy, target Matcher) {
	g.checkMutable()
	g.checkOwned(proxy)
	g.checkOwned(target)
	n := proxy.node()
	if n.kind != KindProxy {
		panic(fmt.Sprintf("grammar: cannot resolve a %v matcher", n.kind))
	}
	if !n.target.Nil() {
		panic(fmt.Sprintf("grammar: proxy %v resolved twice", proxy))
	}
	n.target = target.p
}

// Finalize seals the graph, rewriting every edge that points at a proxy to
// point at the proxy's target instead. It returns root, likewise resolved.
//
// After Finalize succeeds, the graph may no longer be modified.
func (g *Graph) Finalize(root Matcher) (Matcher, error) {
	g.checkOwned(root)

	var errs []error
	resolved := make(map[arena.Pointer[node]]arena.Pointer[node])
	for p, n := range g.nodes.All() {
		if n.kind != KindProxy {
			continue
		}
		target, err := g.follow(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s", err, Matcher{g, p}.Name()))
			continue
		}
		resolved[p] = target
	}
	if err := errors.Join(errs...); err != nil {
		return Matcher{}, fmt.Errorf("grammar: %w", err)
	}

	for _, n := range g.nodes.All() {
		for i, child := range n.children {
			if target, ok := resolved[child]; ok {
				n.children[i] = target
			}
		}
	}
	for p, target := range resolved {
		g.nodes.Deref(p).target = target
	}

	g.finalized = true
	if target, ok := resolved[root.p]; ok {
		root.p = target
	}
	return root, nil
}

// follow walks a chain of proxies down to a real matcher.
func (g *Graph) follow(p arena.Pointer[node]) (arena.Pointer[node], error) {
	for range g.nodes.Len() + 1 {
		n := g.nodes.Deref(p)
		if n.kind != KindProxy {
			return p, nil
		}
		if n.target.Nil() {
			return 0, ErrUnresolved
		}
		p = n.target
	}
	return 0, ErrCycle
}

func (g *Graph) newNode(n node, children ...Matcher) Matcher {
	g.checkMutable()
	for _, child := range children {
		g.checkOwned(child)
		n.children = append(n.children, child.p)
	}
	return Matcher{g, g.nodes.New(n)}
}

func (g *Graph) checkMutable() {
	if g.finalized {
		panic("grammar: graph is already finalized")
	}
}

func (g *Graph) checkOwned(m Matcher) {
	if m.IsZero() {
		panic("grammar: use of zero Matcher")
	}
	if m.g != g {
		panic(fmt.Sprintf("grammar: matcher %v belongs to a different graph", m))
	}
}

func checkChar(c rune) {
	if c == input.EOI || input.IsSentinel(c) {
		panic(fmt.Sprintf("grammar: cannot match reserved character %U", c))
	}
}
