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
	"errors"
	"iter"
	"strings"

	"github.com/bufbuild/pegkit/parse"
)

// SkipChildren may be returned by the enter function passed to
// [WalkEnterAndExit] to not visit the children of a node. Its exit function
// is still called.
var SkipChildren = errors.New("skip children") //nolint:errname,revive,staticcheck // Mirrors fs.SkipDir.

// Walk calls fn for root and every node under it, parents before children.
// If fn returns an error, the walk stops and returns it.
func Walk(root *parse.Node, fn func(*parse.Node) error) error {
	return WalkEnterAndExit(root, fn, nil)
}

// WalkEnterAndExit walks the tree under root, calling enter on each node
// before its children and exit after them. exit may be nil.
//
// If either function returns an error other than [SkipChildren], the walk
// stops and returns it.
func WalkEnterAndExit(root *parse.Node, enter, exit func(*parse.Node) error) error {
	if root == nil {
		return nil
	}

	err := enter(root)
	switch {
	case errors.Is(err, SkipChildren):
	case err != nil:
		return err
	default:
		for _, child := range root.Children() {
			if err := WalkEnterAndExit(child, enter, exit); err != nil {
				return err
			}
		}
	}

	if exit != nil {
		return exit(root)
	}
	return nil
}

// All returns an iterator over root and every node under it, parents before
// children.
func All(root *parse.Node) iter.Seq[*parse.Node] {
	return func(yield func(*parse.Node) bool) {
		var walk func(*parse.Node) bool
		walk = func(n *parse.Node) bool {
			if !yield(n) {
				return false
			}
			for _, child := range n.Children() {
				if !walk(child) {
					return false
				}
			}
			return true
		}
		if root != nil {
			walk(root)
		}
	}
}

// Find returns the first node, in depth-first order, reached from root by a
// slash-separated path of labels, such as "sum/product/number". Each label
// names a child of the node before it; the first names a child of root.
//
// Returns nil if no such node exists.
func Find(root *parse.Node, path string) *parse.Node {
	for n := range FindAll(root, path) {
		return n
	}
	return nil
}

// FindAll returns an iterator over every node reached from root by path, in
// depth-first order. See [Find].
func FindAll(root *parse.Node, path string) iter.Seq[*parse.Node] {
	labels := strings.Split(path, "/")
	return func(yield func(*parse.Node) bool) {
		var find func(n *parse.Node, labels []string) bool
		find = func(n *parse.Node, labels []string) bool {
			if len(labels) == 0 {
				return yield(n)
			}
			for _, child := range n.Children() {
				if child.Label() == labels[0] && !find(child, labels[1:]) {
					return false
				}
			}
			return true
		}
		if root != nil && path != "" {
			find(root, labels)
		}
	}
}

// FindFunc returns the first node under root, in depth-first order and
// including root, for which match returns true, or nil if there is none.
func FindFunc(root *parse.Node, match func(*parse.Node) bool) *parse.Node {
	for n := range All(root) {
		if match(n) {
			return n
		}
	}
	return nil
}

// Collect returns every node under root, including root, for which match
// returns true, in depth-first order.
func Collect(root *parse.Node, match func(*parse.Node) bool) []*parse.Node {
	var out []*parse.Node
	for n := range All(root) {
		if match(n) {
			out = append(out, n)
		}
	}
	return out
}
