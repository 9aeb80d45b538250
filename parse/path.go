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
	"iter"
	"strings"

	"github.com/bufbuild/pegkit/grammar"
)

// Element is one matcher activation along a [Path].
type Element struct {
	Matcher grammar.Matcher
	Start   int // Where the activation started matching.
	Level   int // Depth below the root.
}

// Path is the chain of matcher activations from the root of a run down to
// some matcher.
//
// Paths are immutable and share their prefixes. The nil *Path is the empty
// path.
type Path struct {
	parent *Path
	elem   Element
	len    int
}

// Append returns a path extending p with e. p is not modified.
func (p *Path) Append(e Element) *Path {
	return &Path{parent: p, elem: e, len: p.Len() + 1}
}

// Len returns the number of elements in p.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return p.len
}

// Head returns the last element of p.
//
// Panics if p is empty.
func (p *Path) Head() Element {
	return p.elem
}

// Parent returns p without its last element.
func (p *Path) Parent() *Path {
	if p == nil {
		return nil
	}
	return p.parent
}

// At returns the n-th element of p, counting from the root.
//
// Panics if n is out of range.
func (p *Path) At(n int) Element {
	if n < 0 || n >= p.Len() {
		panic("parse: Path index out of range")
	}
	q := p
	for range p.Len() - n - 1 {
		q = q.parent
	}
	return q.elem
}

// All returns an iterator over the elements of p, from the root.
func (p *Path) All() iter.Seq2[int, Element] {
	return func(yield func(int, Element) bool) {
		elems := make([]Element, p.Len())
		for q := p; q != nil; q = q.parent {
			elems[q.len-1] = q.elem
		}
		for i, e := range elems {
			if !yield(i, e) {
				return
			}
		}
	}
}

// CommonPrefix returns the length of the longest common prefix of p and q.
func (p *Path) CommonPrefix(q *Path) int {
	for p.Len() > q.Len() {
		p = p.parent
	}
	for q.Len() > p.Len() {
		q = q.parent
	}
	// Paths built during one run share their prefixes, but paths from
	// different runs may not, so compare elements rather than pointers.
	n := p.Len()
	for ; p != nil; p, q = p.parent, q.parent {
		if p.elem != q.elem {
			n = p.len - 1
		}
	}
	return n
}

// IsPrefixOf returns whether p is a prefix of q.
func (p *Path) IsPrefixOf(q *Path) bool {
	return p.CommonPrefix(q) == p.Len()
}

// Contains returns whether any element of p is an activation of m.
func (p *Path) Contains(m grammar.Matcher) bool {
	for q := p; q != nil; q = q.parent {
		if q.elem.Matcher == m {
			return true
		}
	}
	return false
}

// String implements [fmt.Stringer], joining the matchers' names with
// slashes.
func (p *Path) String() string {
	var out strings.Builder
	for i, e := range p.All() {
		if i > 0 {
			out.WriteByte('/')
		}
		out.WriteString(e.Matcher.Name())
	}
	return out.String()
}
