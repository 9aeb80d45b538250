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
	"fmt"
	"io"
	"strings"

	"github.com/bufbuild/pegkit/input"
	"github.com/bufbuild/pegkit/parse"
)

// Print writes an indented dump of the tree under root, one node per line:
//
//	[sum] '1+2'
//	  [product] '1'
//	    [number] '1'
//
// Nodes with errors are marked with an E after their label. Their text has
// error recovery's corrections applied.
func Print(w io.Writer, root *parse.Node, in input.Input) error {
	p := printer{w: w, in: in}
	p.node(root, 0)
	return p.err
}

// Sprint is like [Print], but returns a string.
func Sprint(root *parse.Node, in input.Input) string {
	var out strings.Builder
	_ = Print(&out, root, in)
	return out.String()
}

type printer struct {
	w   io.Writer
	in  input.Input
	err error
}

func (p *printer) node(n *parse.Node, depth int) {
	if n == nil || p.err != nil {
		return
	}

	mark := ""
	if n.HasError() {
		mark = " E"
	}
	_, p.err = fmt.Fprintf(p.w, "%s[%s%s] '%s'\n",
		strings.Repeat("  ", depth), n.Label(), mark, input.EscapeString(n.Text(p.in)))

	for _, child := range n.Children() {
		p.node(child, depth+1)
	}
}
