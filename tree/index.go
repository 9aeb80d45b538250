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

package tree

import (
	"github.com/bufbuild/pegkit/internal/interval"
	"github.com/bufbuild/pegkit/parse"
)

// Index finds the nodes of a tree that cover a given input index.
type Index struct {
	spans interval.Intersect[int, *parse.Node]
}

// NewIndex indexes the tree under root. Nodes that matched nothing cover no
// index, and are left out.
func NewIndex(root *parse.Node) *Index {
	idx := new(Index)
	for n := range All(root) {
		idx.spans.Insert(n.Start(), n.End(), n)
	}
	return idx
}

// At returns the nodes covering index, from the outermost to the innermost.
// The returned slice must not be modified.
func (idx *Index) At(index int) []*parse.Node {
	return idx.spans.Get(index).Values
}

// Innermost returns the deepest node covering index, or nil if there is
// none.
func (idx *Index) Innermost(index int) *parse.Node {
	nodes := idx.At(index)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[len(nodes)-1]
}
