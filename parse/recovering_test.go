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

package parse_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/pegkit/grammar"
	"github.com/bufbuild/pegkit/input"
	"github.com/bufbuild/pegkit/parse"
)

type original struct{ start, end int }

func originals(errs []*parse.ParseError) []original {
	var out []original
	for _, err := range errs {
		start, end := err.Original()
		out = append(out, original{start, end})
	}
	return out
}

func messages(errs []*parse.ParseError) []string {
	var out []string
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}

func TestRecoveringValid(t *testing.T) {
	t.Parallel()

	in := input.NewText("", "1+2*3")
	result, err := parse.Recovering{Root: loadCalc(t)}.Run(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 7, result.Value())
	// Inputs without errors are not copied.
	assert.Same(t, in, result.Input)
}

func TestRecovering(t *testing.T) {
	t.Parallel()

	g := grammar.New()
	ab := finalize(t, g, g.Seq(g.Char('a'), g.Char('b')))

	g = grammar.New()
	abEOI := finalize(t, g, g.Seq(g.Char('a'), g.Char('b'), g.EOI()))

	g = grammar.New()
	abcEOI := finalize(t, g, g.Seq(g.Char('a'), g.Char('b'), g.Char('c'), g.EOI()))

	g = grammar.New()
	digits := finalize(t, g, g.Seq(g.OneOrMore(g.Range('0', '9')), g.EOI()))

	g = grammar.New()
	abcd := finalize(t, g, g.Seq(g.Char('a'), g.Char('b'), g.ZeroOrMore(g.Char('c')), g.Char('d'), g.EOI()))

	tests := []struct {
		name      string
		root      grammar.Matcher
		text      string
		corrected string
		clean     string
		errors    []string
		originals []original
	}{
		{
			name:      "insertion",
			root:      ab,
			text:      "ac",
			corrected: "aINS_ERRORbc",
			clean:     "ab",
			errors:    []string{"1:2: invalid input 'c', expected 'b'"},
			originals: []original{{1, 2}},
		},
		{
			name:      "deletion",
			root:      digits,
			text:      "123x",
			corrected: "123DEL_ERRORx",
			clean:     "123",
			errors:    []string{"1:4: invalid input 'x', expected '0'..'9' or EOI"},
			originals: []original{{3, 4}},
		},
		{
			name:      "replacement",
			root:      abEOI,
			text:      "ac",
			corrected: "aDEL_ERRORcINS_ERRORb",
			clean:     "ab",
			errors:    []string{"1:2: invalid input 'c', expected 'b'"},
			originals: []original{{1, 2}},
		},
		{
			// Deleting the c and inserting a b both get as far as the !,
			// so the deletion wins. The ! is then replaced.
			name:      "deletion over insertion",
			root:      abcd,
			text:      "ac!d",
			corrected: "aDEL_ERRORcDEL_ERROR!INS_ERRORbd",
			clean:     "abd",
			errors: []string{
				"1:2: invalid input 'c', expected 'b'",
				"1:3: invalid input '!', expected 'b'",
			},
			originals: []original{{1, 2}, {2, 3}},
		},
		{
			name:      "several",
			root:      abcEOI,
			text:      "axxc",
			corrected: "aDEL_ERRORxINS_ERRORbDEL_ERRORxc",
			clean:     "abc",
			errors: []string{
				"1:2: invalid input 'x', expected 'b'",
				"1:3: invalid input 'x', expected 'c'",
			},
			originals: []original{{1, 2}, {2, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := parse.Recovering{Root: tt.root}.Run(context.Background(), input.NewText("", tt.text))
			require.NoError(t, err)
			require.True(t, result.Matched)
			assert.Equal(t, tt.corrected, input.EscapeString(result.Input.Extract(0, result.Input.Len())))
			assert.Equal(t, tt.errors, messages(result.Errors))
			assert.Equal(t, tt.originals, originals(result.Errors))

			require.NotNil(t, result.Root)
			assert.True(t, result.Root.HasError())
			assert.Equal(t, tt.clean, result.Root.Text(result.Input))
		})
	}
}

func TestRecoveringActions(t *testing.T) {
	t.Parallel()

	// The missing operand is inserted as a 0, and the sum still computes.
	result, err := parse.Recovering{Root: loadCalc(t)}.Run(context.Background(), input.NewText("", "1+"))
	require.NoError(t, err)
	require.True(t, result.Matched)
	assert.Equal(t, 1, result.Value())
	assert.Equal(t, []string{"1:3: unexpected end of input, expected product"}, messages(result.Errors))
	assert.Equal(t, []original{{2, 2}}, originals(result.Errors))
	assert.Equal(t, "1+0", result.Root.Text(result.Input))
}

func TestRecoveringResync(t *testing.T) {
	t.Parallel()

	// Nothing can fix the inner sequence, so it is abandoned and the input
	// is skipped up to the ';' that follows it.
	g := grammar.New()
	inner := g.Seq(g.Char('a'), g.Nothing()).Label("inner")
	root := finalize(t, g, g.Seq(inner, g.Char(';'), g.EOI()))

	result, err := parse.Recovering{Root: root}.Run(context.Background(), input.NewText("", "abc;"))
	require.NoError(t, err)
	require.True(t, result.Matched)
	assert.Equal(t, "aRESYNC_STARTbcRESYNC_END;",
		input.EscapeString(result.Input.Extract(0, result.Input.Len())))
	assert.Equal(t, []string{`1:2: invalid input "bc"`}, messages(result.Errors))
	assert.Equal(t, []original{{1, 3}}, originals(result.Errors))
	assert.Equal(t, "a;", result.Root.Text(result.Input))

	children := result.Root.Children()
	require.Len(t, children, 3)
	assert.Equal(t, "[inner E] 0..5", children[0].String())
	assert.Equal(t, "a", children[0].Text(result.Input))

	// With nothing to synchronize on, the rest of the input is skipped.
	g = grammar.New()
	root = finalize(t, g, g.Seq(g.Char('a'), g.Nothing()).Label("never"))
	result, err = parse.Recovering{Root: root}.Run(context.Background(), input.NewText("", "abc"))
	require.NoError(t, err)
	require.True(t, result.Matched)
	assert.Equal(t, "aRESYNC_EOIbc", input.EscapeString(result.Input.Extract(0, result.Input.Len())))
	assert.Equal(t, []original{{1, 3}}, originals(result.Errors))
	assert.Equal(t, "a", result.Root.Text(result.Input))
}

func TestRecoveringTimeout(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := parse.Recovering{Root: loadCalc(t)}.Run(ctx, input.NewText("", "1+"))
	assert.Nil(t, result)
	var timeout *parse.TimeoutError
	require.ErrorAs(t, err, &timeout)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, timeout.Result)
	assert.False(t, timeout.Result.Matched)
	assert.Equal(t, "parse: error recovery interrupted: context canceled", err.Error())

	// A canceled context does not matter if there is nothing to recover.
	result, err = parse.Recovering{Root: loadCalc(t), Timeout: time.Nanosecond}.Run(ctx, input.NewText("", "1"))
	require.NoError(t, err)
	assert.True(t, result.Matched)
}
