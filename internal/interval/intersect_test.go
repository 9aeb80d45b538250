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

package interval_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/pegkit/internal/interval"
)

func TestInsert(t *testing.T) {
	t.Parallel()
	type in struct {
		start, end int
		value      string
	}
	type out = interval.Entry[int, string]

	tests := []struct {
		name   string
		ranges []in
		want   []out
	}{
		{
			name:   "single",
			ranges: []in{{0, 10, "foo"}},
			want:   []out{{0, 10, []string{"foo"}}},
		},
		{
			name:   "empty",
			ranges: []in{{0, 10, "foo"}, {5, 5, "bar"}},
			want:   []out{{0, 10, []string{"foo"}}},
		},
		{
			name:   "disjoint",
			ranges: []in{{30, 40, "bar"}, {0, 10, "foo"}, {10, 20, "baz"}},
			want: []out{
				{0, 10, []string{"foo"}},
				{10, 20, []string{"baz"}},
				{30, 40, []string{"bar"}},
			},
		},
		{
			name:   "nested",
			ranges: []in{{0, 10, "outer"}, {2, 4, "inner"}},
			want: []out{
				{0, 2, []string{"outer"}},
				{2, 4, []string{"outer", "inner"}},
				{4, 10, []string{"outer"}},
			},
		},
		{
			name:   "same",
			ranges: []in{{0, 10, "foo"}, {0, 10, "bar"}},
			want:   []out{{0, 10, []string{"foo", "bar"}}},
		},
		{
			name:   "prefix",
			ranges: []in{{0, 10, "foo"}, {0, 3, "bar"}, {0, 1, "baz"}},
			want: []out{
				{0, 1, []string{"foo", "bar", "baz"}},
				{1, 3, []string{"foo", "bar"}},
				{3, 10, []string{"foo"}},
			},
		},
		{
			name:   "straddle",
			ranges: []in{{0, 10, "foo"}, {20, 30, "bar"}, {5, 25, "baz"}},
			want: []out{
				{0, 5, []string{"foo"}},
				{5, 10, []string{"foo", "baz"}},
				{10, 20, []string{"baz"}},
				{20, 25, []string{"bar", "baz"}},
				{25, 30, []string{"bar"}},
			},
		},
		{
			name:   "cover",
			ranges: []in{{3, 5, "foo"}, {0, 10, "bar"}},
			want: []out{
				{0, 3, []string{"bar"}},
				{3, 5, []string{"foo", "bar"}},
				{5, 10, []string{"bar"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var m interval.Intersect[int, string]
			for _, r := range tt.ranges {
				m.Insert(r.start, r.end, r.value)
			}
			assert.Equal(t, tt.want, slices.Collect(m.Entries()))
			assert.Equal(t, len(tt.want), m.Len())

			for _, want := range tt.want {
				for p := want.Start; p < want.End; p++ {
					assert.Equal(t, want, m.Get(p), "Get(%d)", p)
				}
			}
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	var m interval.Intersect[int, string]
	assert.True(t, m.Insert(2, 4, "a"))
	assert.False(t, m.Insert(3, 6, "b"))
	assert.True(t, m.Insert(8, 9, "c"))

	assert.Empty(t, m.Get(0).Values)
	assert.Empty(t, m.Get(6).Values)
	assert.Empty(t, m.Get(9).Values)
	assert.Equal(t, []string{"a", "b"}, m.Get(3).Values)
	assert.Equal(t, []string{"c"}, m.Get(8).Values)
	assert.True(t, m.Get(5).Contains(5))
	assert.False(t, m.Get(5).Contains(6))

	assert.Panics(t, func() { m.Insert(2, 1, "x") })
}
