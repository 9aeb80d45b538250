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

// Package internal holds small helpers shared by the packages of this module.
package internal

import "fmt"

// Oxford formats a list of values for use in prose: "a", "a or b",
// "a, b, or c". The serial comma appears only for three or more elements.
type Oxford[T any] struct {
	Conjunction string
	Elements    []T
}

var _ fmt.Formatter = Oxford[int]{}

// Format implements [fmt.Formatter]. Only %v is supported; any other verb
// prints the struct itself.
func (o Oxford[T]) Format(out fmt.State, verb rune) {
	if verb != 'v' || out.Flag('#') {
		fmt.Fprintf(out, "%#v", struct {
			Conjunction string
			Elements    []T
		}(o))
		return
	}

	n := len(o.Elements)
	switch n {
	case 0:
	case 1:
		fmt.Fprintf(out, "%v", o.Elements[0])
	case 2:
		fmt.Fprintf(out, "%v %s %v", o.Elements[0], o.Conjunction, o.Elements[1])
	default:
		for _, v := range o.Elements[:n-1] {
			fmt.Fprintf(out, "%v, ", v)
		}
		fmt.Fprintf(out, "%s %v", o.Conjunction, o.Elements[n-1])
	}
}
