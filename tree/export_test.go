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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/bufbuild/pegkit/grammar"
	"github.com/bufbuild/pegkit/input"
	"github.com/bufbuild/pegkit/parse"
	"github.com/bufbuild/pegkit/tree"
)

type point struct{ X, Y int }

func TestExport(t *testing.T) {
	t.Parallel()

	g := grammar.New()
	root, err := g.Finalize(g.Seq(
		g.Char('a'),
		g.Action(grammar.Builtins()["push"]),
		g.Char('b'),
		g.Action(func(ctx grammar.ActionContext) bool {
			ctx.Values().Push(point{1, 2})
			return true
		}),
	).Label("ab"))
	require.NoError(t, err)

	result, err := parse.Basic{Root: root}.Run(context.Background(), input.NewText("", "ab"))
	require.NoError(t, err)
	require.True(t, result.Matched)

	want, err := structpb.NewStruct(map[string]any{
		"label": "ab",
		"start": 0,
		"end":   2,
		"text":  "ab",
		"value": "{1 2}",
		"children": []any{
			map[string]any{"label": "'a'", "start": 0, "end": 1, "text": "a"},
			map[string]any{"label": "'b'", "start": 1, "end": 2, "text": "b", "value": "a"},
		},
	})
	require.NoError(t, err)

	got, err := tree.ToStruct(result.Root, result.Input)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(want, got, protocmp.Transform()))

	data, err := tree.MarshalJSON(result.Root, result.Input)
	require.NoError(t, err)
	got = new(structpb.Struct)
	require.NoError(t, protojson.Unmarshal(data, got))
	assert.Empty(t, cmp.Diff(want, got, protocmp.Transform()))

	data, err = tree.MarshalWire(result.Root, result.Input)
	require.NoError(t, err)
	got = new(structpb.Struct)
	require.NoError(t, proto.Unmarshal(data, got))
	assert.Empty(t, cmp.Diff(want, got, protocmp.Transform()))

	empty, err := tree.ToStruct(nil, result.Input)
	require.NoError(t, err)
	assert.Empty(t, empty.GetFields())
}

func TestExportErrors(t *testing.T) {
	t.Parallel()

	result := run(t, recovering, "1+")
	got, err := tree.ToStruct(result.Root, result.Input)
	require.NoError(t, err)

	fields := got.GetFields()
	assert.True(t, fields["error"].GetBoolValue())
	assert.Equal(t, "1+0", fields["text"].GetStringValue())
	assert.InDelta(t, 1, fields["value"].GetNumberValue(), 0)
	assert.InDelta(t, 4, fields["end"].GetNumberValue(), 0)
}
