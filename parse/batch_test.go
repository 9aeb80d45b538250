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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/pegkit/grammar"
	"github.com/bufbuild/pegkit/input"
	"github.com/bufbuild/pegkit/parse"
)

func TestRunAll(t *testing.T) {
	t.Parallel()

	g := grammar.New()
	root := finalize(t, g, g.Seq(g.Char('a'), g.Char('b'), g.EOI()))

	var inputs []input.Input
	for _, text := range []string{"ab", "ax", "ab", "b", "abab"} {
		inputs = append(inputs, input.NewText(text+".txt", text))
	}

	results, err := parse.RunAll(context.Background(), parse.Reporting{Root: root}, inputs, 2)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	var matched []bool
	for i, result := range results {
		assert.Same(t, inputs[i], result.Input)
		matched = append(matched, result.Matched)
	}
	assert.Equal(t, []bool{true, false, true, false, false}, matched)
	assert.Equal(t, "ax.txt:1:2: invalid input 'x', expected 'b'", results[1].Errors[0].Error())
}

func TestRunAllErrors(t *testing.T) {
	t.Parallel()

	inputs := []input.Input{input.NewText("good", ""), input.NewText("bad", "")}
	_, err := parse.RunAll(context.Background(), failing{}, inputs, 0)
	assert.EqualError(t, err, "bad: boom")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = parse.RunAll(ctx, failing{}, inputs, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

type failing struct{}

func (failing) Run(_ context.Context, in input.Input) (*parse.Result, error) {
	if in.Path() == "bad" {
		return nil, errors.New("boom")
	}
	return &parse.Result{Matched: true, Input: in}, nil
}
