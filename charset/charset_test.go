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

package charset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/pegkit/charset"
)

func TestContains(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	abc := charset.Of('c', 'a', 'b', 'a')
	assert.Equal([]rune("abc"), abc.Chars())
	assert.True(abc.Contains('a'))
	assert.False(abc.Contains('d'))
	assert.False(abc.IsNegated())

	notABC := charset.AllBut('a', 'b', 'c')
	assert.False(notABC.Contains('a'))
	assert.True(notABC.Contains('d'))
	assert.True(notABC.IsNegated())

	assert.True(charset.Empty.IsEmpty())
	assert.False(charset.All.IsEmpty())
	assert.True(charset.All.Contains('z'))
	assert.False(charset.Empty.Contains('z'))
}

func TestAddRemove(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	ab := charset.Of('a', 'b')
	abc := ab.Add('c')
	assert.Equal("[ab]", ab.String())
	assert.Equal("[abc]", abc.String())
	assert.Equal("[ac]", abc.Remove('b').String())

	notAB := charset.AllBut('a', 'b')
	assert.Equal("![b]", notAB.Add('a').String())
	assert.Equal("![abz]", notAB.Remove('z').String())
	assert.Equal("![ab]", notAB.String())
}

func TestAlgebra(t *testing.T) {
	t.Parallel()

	ab := charset.Of('a', 'b')
	bc := charset.Of('b', 'c')
	notAB := charset.AllBut('a', 'b')
	notBC := charset.AllBut('b', 'c')

	tests := []struct {
		name      string
		got, want charset.Set
	}{
		{"pos|pos", ab.Union(bc), charset.Of('a', 'b', 'c')},
		{"neg|neg", notAB.Union(notBC), charset.AllBut('b')},
		{"pos|neg", ab.Union(notBC), charset.AllBut('c')},
		{"neg|pos", notAB.Union(bc), charset.AllBut('a')},

		{"pos-pos", ab.Difference(bc), charset.Of('a')},
		{"pos-neg", ab.Difference(notBC), charset.Of('b')},
		{"neg-pos", notAB.Difference(bc), charset.AllBut('a', 'b', 'c')},
		{"neg-neg", notAB.Difference(notBC), charset.Of('c')},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.True(t, tt.want.Equal(tt.got), "want %v, got %v", tt.want, tt.got)
		})
	}

	// None of the operands were modified.
	assert.Equal(t, "[ab]", ab.String())
	assert.Equal(t, "![bc]", notBC.String())
}
