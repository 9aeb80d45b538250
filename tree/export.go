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

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/bufbuild/pegkit/input"
	"github.com/bufbuild/pegkit/parse"
)

// ToStruct converts the tree under root into a protobuf Struct. Each node
// becomes a struct with the fields
//
//	label     string
//	start     number
//	end       number
//	text      string
//	error     bool, only present if true
//	value     the node's value, only present if not nil
//	children  list of structs, only present if non-empty
//
// Values that have no protobuf equivalent are exported as their fmt
// representation.
func ToStruct(root *parse.Node, in input.Input) (*structpb.Struct, error) {
	if root == nil {
		return &structpb.Struct{}, nil
	}
	return structpb.NewStruct(toMap(root, in))
}

// MarshalJSON exports the tree under root as JSON, using the format of
// [ToStruct].
//
// The output is not stable: it is only meant to be read back by a JSON
// parser.
func MarshalJSON(root *parse.Node, in input.Input) ([]byte, error) {
	s, err := ToStruct(root, in)
	if err != nil {
		return nil, err
	}
	return protojson.MarshalOptions{Multiline: true}.Marshal(s)
}

// MarshalWire exports the tree under root in the protobuf wire format of a
// google.protobuf.Struct, using the format of [ToStruct]. The encoding is
// deterministic.
func MarshalWire(root *parse.Node, in input.Input) ([]byte, error) {
	s, err := ToStruct(root, in)
	if err != nil {
		return nil, err
	}
	return proto.MarshalOptions{Deterministic: true}.Marshal(s)
}

func toMap(n *parse.Node, in input.Input) map[string]any {
	m := map[string]any{
		"label": n.Label(),
		"start": n.Start(),
		"end":   n.End(),
		"text":  n.Text(in),
	}
	if n.HasError() {
		m["error"] = true
	}
	if v := n.Value(); v != nil {
		if _, err := structpb.NewValue(v); err == nil {
			m["value"] = v
		} else {
			m["value"] = fmt.Sprint(v)
		}
	}
	if children := n.Children(); len(children) > 0 {
		list := make([]any, len(children))
		for i, child := range children {
			list[i] = toMap(child, in)
		}
		m["children"] = list
	}
	return m
}
