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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/pegkit/grammar"
	"github.com/bufbuild/pegkit/input"
)

func TestShiftErrors(t *testing.T) {
	t.Parallel()

	errs := []*ParseError{
		{Start: 1, End: 2},
		{Start: 3, End: 6},
		{Start: 5, End: 5},
		{Start: 7, End: 8},
	}
	shiftErrors(errs, 5, 2)

	var spans [][2]int
	for _, err := range errs {
		spans = append(spans, [2]int{err.Start, err.End})
	}
	assert.Equal(t, [][2]int{{1, 2}, {3, 8}, {7, 7}, {9, 10}}, spans)
	assert.Equal(t, []int{0, 0, 2, 2}, []int{errs[0].shift, errs[1].shift, errs[2].shift, errs[3].shift})
}

func TestExpectedAfterShift(t *testing.T) {
	t.Parallel()

	g := grammar.New()
	digit := g.Range('0', '9')
	operand := g.Seq(digit).Label("operand")
	root := g.Seq(g.Char('+'), operand)
	root, err := g.Finalize(root)
	require.NoError(t, err)

	// operand and its digit both started at index 1 when the digit failed.
	path := (*Path)(nil).
		Append(Element{Matcher: root, Start: 0, Level: 0}).
		Append(Element{Matcher: operand, Start: 1, Level: 1}).
		Append(Element{Matcher: digit, Start: 1, Level: 2})

	perr := &ParseError{
		Kind:   ErrorInvalidInput,
		Start:  1,
		End:    1,
		Input:  input.NewText("", "+"),
		Failed: []*Path{path},
	}
	assert.Equal(t, []string{"operand"}, perr.Expected())

	// Inserting a correction before the error moves it, but the paths still
	// describe where the matchers were when they failed.
	shiftErrors([]*ParseError{perr}, 1, 2)
	assert.Equal(t, 3, perr.Start)
	assert.Equal(t, []string{"operand"}, perr.Expected())
}

func TestUnshift(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 4, unshift(7, 2, 3))
	assert.Equal(t, 2, unshift(5, 2, 3))
	assert.Equal(t, 2, unshift(4, 2, 3))
	assert.Equal(t, 1, unshift(1, 2, 3))
}

func TestCleanText(t *testing.T) {
	t.Parallel()

	text := func(parts ...any) input.Input {
		var s []rune
		for _, p := range parts {
			switch p := p.(type) {
			case string:
				s = append(s, []rune(p)...)
			case rune:
				s = append(s, p)
			}
		}
		return input.NewText("", string(s))
	}
	clean := func(in input.Input) string {
		return cleanText(in, 0, in.Len())
	}

	assert.Equal(t, "ac", clean(text("a", input.Del, "bc")))
	assert.Equal(t, "axb", clean(text("a", input.Ins, "xb")))
	assert.Equal(t, "ab", clean(text("a", input.ResyncStart, "junk", input.ResyncEnd, "b")))
	assert.Equal(t, "ab", clean(text("ab", input.ResyncEOI, "cd")))
	assert.Panics(t, func() { clean(text("a", input.Resync)) })
	assert.Panics(t, func() { clean(text("a", input.ResyncEnd)) })

	// A Mutable gives the same result as the equivalent text.
	buf := input.NewMutable(input.NewText("", "abcd"))
	buf.Insert(1, input.Del)
	buf.Insert(4, 'x')
	buf.Insert(4, input.Ins)
	assert.Equal(t, "acxd", clean(buf))
	assert.Equal(t, "cx", cleanText(buf, 3, 6))
}
