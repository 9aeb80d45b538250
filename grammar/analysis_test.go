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

package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/pegkit/grammar"
	"github.com/bufbuild/pegkit/input"
)

func TestAcceptsChar(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	g := grammar.New()
	assert.True(grammar.AcceptsChar(g.IgnoreCase('a'), 'A'))
	assert.True(grammar.AcceptsChar(g.Range('0', '9'), '5'))
	assert.False(grammar.AcceptsChar(g.Range('0', '9'), 'x'))
	assert.True(grammar.AcceptsChar(g.NoneOf("x"), 'y'))
	assert.True(grammar.AcceptsChar(g.EOI(), input.EOI))

	for _, c := range []rune{input.EOI, input.Del, input.Ins, input.Resync} {
		assert.False(grammar.AcceptsChar(g.Any(), c))
		assert.False(grammar.AcceptsChar(g.NoneOf("x"), c))
	}
	assert.False(grammar.AcceptsChar(g.String("a"), 'a'))
}

func TestStarterChar(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	g := grammar.New()
	starter := func(m grammar.Matcher) rune {
		c, ok := grammar.StarterChar(m)
		assert.True(ok, "%v", m)
		return c
	}
	assert.Equal('x', starter(g.Char('x')))
	assert.Equal('a', starter(g.Range('a', 'f')))
	assert.Equal('b', starter(g.AnyOf("cb")))
	assert.Equal('!', starter(g.NoneOf(" ")))
	assert.Equal(' ', starter(g.Any()))
	assert.Equal(input.EOI, starter(g.EOI()))

	_, ok := grammar.StarterChar(g.Seq())
	assert.False(ok)
}

func TestCanMatchEmpty(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	g := grammar.New()
	a := g.Char('a')
	assert.False(grammar.CanMatchEmpty(a))
	assert.True(grammar.CanMatchEmpty(g.ZeroOrMore(a)))
	assert.True(grammar.CanMatchEmpty(g.Seq(g.Optional(a), g.TestNot(a))))
	assert.False(grammar.CanMatchEmpty(g.Seq(g.Optional(a), a)))
	assert.True(grammar.CanMatchEmpty(g.FirstOf(a, g.Empty())))
	assert.False(grammar.CanMatchEmpty(g.OneOrMore(a)))
	assert.True(grammar.CanMatchEmpty(g.EOI()))
	assert.False(grammar.CanMatchEmpty(g.Nothing()))

	// A recursive rule terminates.
	list := g.Proxy()
	g.Resolve(list, g.FirstOf(g.Seq(a, list), g.Empty()))
	root, err := g.Finalize(list)
	assert.NoError(err)
	assert.True(grammar.CanMatchEmpty(root))
}

func TestCanStartWith(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	g := grammar.New()
	ws := g.ZeroOrMore(g.Char(' '))
	semi := g.Seq(ws, g.Char(';'))
	assert.True(grammar.CanStartWith(semi, ';'))
	assert.True(grammar.CanStartWith(semi, ' '))
	assert.False(grammar.CanStartWith(semi, 'x'))
	assert.True(grammar.CanStartWith(g.String("if"), 'i'))
	assert.False(grammar.CanStartWith(g.TestNot(g.Char('a')), 'a'))
	assert.False(grammar.CanStartWith(g.Action(func(grammar.ActionContext) bool { return true }), 'a'))
}

func TestMandatoryActions(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	g := grammar.New()
	noop := func(grammar.ActionContext) bool { return true }
	a1, a2, a3, a4 := g.Action(noop), g.Action(noop), g.Action(noop), g.Action(noop)
	m := g.Seq(
		a1,
		g.Optional(a2),
		g.FirstOf(g.Seq(g.Char('x'), a3), a4),
		g.OneOrMore(a1),
	)
	assert.Equal([]grammar.Matcher{a1, a3, a1}, grammar.MandatoryActions(m))
}
