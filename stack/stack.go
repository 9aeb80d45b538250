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

// Package stack provides the persistent operand stack that grammar actions
// use to build up values during a parse.
package stack

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// ErrEmpty is the panic value raised when popping or peeking past the bottom
// of a [Stack].
var ErrEmpty = errors.New("stack: not enough values on the operand stack")

// Stack is a persistent stack of values.
//
// The frames of a Stack are immutable; a Stack value is only a reference to
// its top frame. Copying a Stack is O(1), and operations on the copy never
// affect the original. This is what lets a parse context hand its stack down
// to a sub-match and simply discard it if the sub-match fails.
//
// A zero Stack is empty and ready to use.
type Stack struct {
	head *frame
}

type frame struct {
	value any
	next  *frame
	size  int
}

// Snapshot is a saved [Stack] state; see [Stack.Snapshot].
type Snapshot struct {
	head *frame
}

// Of returns a stack holding the given values, with the last one on top.
func Of(values ...any) Stack {
	var s Stack
	for _, v := range values {
		s.Push(v)
	}
	return s
}

// Size returns the number of values on the stack.
func (s *Stack) Size() int {
	if s.head == nil {
		return 0
	}
	return s.head.size
}

// IsEmpty returns whether the stack has no values.
func (s *Stack) IsEmpty() bool {
	return s.head == nil
}

// Push pushes v onto the stack.
func (s *Stack) Push(v any) {
	s.head = &frame{value: v, next: s.head, size: s.Size() + 1}
}

// Pop removes the top value and returns it.
//
// Panics with [ErrEmpty] if the stack is empty.
func (s *Stack) Pop() any {
	top := s.top(0)
	s.head = top.next
	return top.value
}

// Peek returns the top value without removing it.
//
// Panics with [ErrEmpty] if the stack is empty.
func (s *Stack) Peek() any {
	return s.top(0).value
}

// PeekAt returns the value n positions below the top; PeekAt(0) is the top.
//
// Panics with [ErrEmpty] if the stack has n values or fewer.
func (s *Stack) PeekAt(n int) any {
	return s.top(n).value
}

// Poke replaces the top value.
//
// Panics with [ErrEmpty] if the stack is empty.
func (s *Stack) Poke(v any) {
	top := s.top(0)
	s.head = &frame{value: v, next: top.next, size: top.size}
}

// Dup pushes a copy of the top value.
func (s *Stack) Dup() {
	s.Push(s.Peek())
}

// Swap exchanges the two top values.
func (s *Stack) Swap() {
	a := s.Pop()
	b := s.Pop()
	s.Push(a)
	s.Push(b)
}

// Snapshot records the current state of the stack. It is O(1).
func (s *Stack) Snapshot() Snapshot {
	return Snapshot{s.head}
}

// Restore resets the stack to a previously taken snapshot. It is O(1).
func (s *Stack) Restore(snapshot Snapshot) {
	s.head = snapshot.head
}

// Clear removes every value.
func (s *Stack) Clear() {
	s.head = nil
}

// All returns an iterator over the values on the stack, from top to bottom.
func (s Stack) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		for f := s.head; f != nil; f = f.next {
			if !yield(f.value) {
				return
			}
		}
	}
}

// String implements [fmt.Stringer].
func (s Stack) String() string {
	var out strings.Builder
	out.WriteByte('[')
	for v := range s.All() {
		if out.Len() > 1 {
			out.WriteString(", ")
		}
		fmt.Fprint(&out, v)
	}
	out.WriteByte(']')
	return out.String()
}

func (s *Stack) top(n int) *frame {
	f := s.head
	for range n {
		if f == nil {
			break
		}
		f = f.next
	}
	if f == nil {
		panic(ErrEmpty)
	}
	return f
}
