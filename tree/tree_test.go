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

package tree_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/pegkit/grammar"
	"github.com/bufbuild/pegkit/input"
	"github.com/bufbuild/pegkit/parse"
	"github.com/bufbuild/pegkit/tree"
)

const calc = `
start: line
rules:
  line: [sum, EOI]
  sum: [product, {zeroOrMore: [{char: "+"}, product, {action: add}]}]
  product: [atom, {zeroOrMore: [{char: "*"}, atom, {action: mul}]}]
  atom:
    first:
      - number
      - [{char: "("}, sum, {char: ")"}]
  number:
    seq: [{oneOrMore: {range: "0-9"}}, {action: pushInt}]
    suppressSubnodes: true
`

func run(t *testing.T, runner func(grammar.Matcher) parse.Runner, text string) *parse.Result {
	t.Helper()
	rules, err := grammar.Load([]byte(calc), nil)
	require.NoError(t, err)
	result, err := runner(rules.Root).Run(context.Background(), input.NewText("", text))
	require.NoError(t, err)
	require.True(t, result.Matched)
	return result
}

func basic(root grammar.Matcher) parse.Runner      { return parse.Basic{Root: root} }
func recovering(root grammar.Matcher) parse.Runner { return parse.Recovering{Root: root} }

func labels(nodes []*parse.Node) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.Label())
	}
	return out
}

func TestPrint(t *testing.T) {
	t.Parallel()

	result := run(t, basic, "1+2*3")
	assert.Equal(t, strings.Join([]string{
		"[line] '1+2*3'",
		"  [sum] '1+2*3'",
		"    [product] '1'",
		"      [atom] '1'",
		"        [number] '1'",
		"      [ZeroOrMore] ''",
		"    [ZeroOrMore] '+2*3'",
		"      [Sequence] '+2*3'",
		"        ['+'] '+'",
		"        [product] '2*3'",
		"          [atom] '2'",
		"            [number] '2'",
		"          [ZeroOrMore] '*3'",
		"            [Sequence] '*3'",
		"              ['*'] '*'",
		"              [atom] '3'",
		"                [number] '3'",
		"  [EOI] ''",
		"",
	}, "\n"), tree.Sprint(result.Root, result.Input))

	result = run(t, recovering, "1+")
	assert.Equal(t, strings.Join([]string{
		"[line E] '1+0'",
		"  [sum E] '1+0'",
		"    [product] '1'",
		"      [atom] '1'",
		"        [number] '1'",
		"      [ZeroOrMore] ''",
		"    [ZeroOrMore E] '+0'",
		"      [Sequence E] '+0'",
		"        ['+'] '+'",
		"        [product E] '0'",
		"          [atom E] '0'",
		"            [number E] '0'",
		"          [ZeroOrMore] ''",
		"  [EOI] ''",
		"",
	}, "\n"), tree.Sprint(result.Root, result.Input))

	assert.Empty(t, tree.Sprint(nil, result.Input))
}

func TestFind(t *testing.T) {
	t.Parallel()

	result := run(t, basic, "1+2*3")
	root, in := result.Root, result.Input

	number := tree.Find(root, "sum/product/atom/number")
	require.NotNil(t, number)
	assert.Equal(t, "1", number.Text(in))
	assert.Equal(t, 1, number.Value())

	product := tree.Find(root, "sum/ZeroOrMore/Sequence/product")
	require.NotNil(t, product)
	assert.Equal(t, "2*3", product.Text(in))

	assert.Nil(t, tree.Find(root, "sum/nope"))
	assert.Nil(t, tree.Find(root, ""))
	assert.Nil(t, tree.Find(nil, "sum"))

	var texts []string
	for n := range tree.FindAll(root, "sum/product/atom") {
		texts = append(texts, n.Text(in))
	}
	assert.Equal(t, []string{"1"}, texts)

	numbers := tree.Collect(root, func(n *parse.Node) bool { return n.Label() == "number" })
	texts = texts[:0]
	for _, n := range numbers {
		texts = append(texts, n.Text(in))
	}
	assert.Equal(t, []string{"1", "2", "3"}, texts)

	star := tree.FindFunc(root, func(n *parse.Node) bool { return n.Label() == "'*'" })
	require.NotNil(t, star)
	assert.Equal(t, 3, star.Start())
}

func TestWalk(t *testing.T) {
	t.Parallel()

	result := run(t, basic, "1+2*3")

	var entered, exited []string
	err := tree.WalkEnterAndExit(result.Root,
		func(n *parse.Node) error {
			entered = append(entered, n.Label())
			if n.Label() == "product" {
				return tree.SkipChildren
			}
			return nil
		},
		func(n *parse.Node) error {
			exited = append(exited, n.Label())
			return nil
		},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"line", "sum", "product", "ZeroOrMore", "Sequence", "'+'", "product", "EOI"}, entered)
	assert.Equal(t, []string{"product", "'+'", "product", "Sequence", "ZeroOrMore", "sum", "EOI", "line"}, exited)

	stop := errors.New("stop")
	var count int
	err = tree.Walk(result.Root, func(n *parse.Node) error {
		count++
		if n.Label() == "number" {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 5, count)

	count = 0
	for range tree.All(result.Root) {
		count++
	}
	assert.Equal(t, 18, count)
}

func TestIndex(t *testing.T) {
	t.Parallel()

	result := run(t, basic, "1+2*3")
	idx := tree.NewIndex(result.Root)

	assert.Equal(t,
		[]string{"line", "sum", "ZeroOrMore", "Sequence", "product", "atom", "number"},
		labels(idx.At(2)))
	assert.Equal(t, "number", idx.Innermost(2).Label())
	assert.Equal(t, "'+'", idx.Innermost(1).Label())
	assert.Equal(t, []string{"line", "sum", "product", "atom", "number"}, labels(idx.At(0)))

	assert.Empty(t, idx.At(5))
	assert.Nil(t, idx.Innermost(5))
	assert.Nil(t, idx.Innermost(-1))
}
