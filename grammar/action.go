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

package grammar

import (
	"github.com/bufbuild/pegkit/input"
	"github.com/bufbuild/pegkit/stack"
)

// Action is a callback embedded in a grammar with [Graph.Action].
//
// An action succeeds by returning true. It may read and write the operand
// stack through ctx, but must not retain ctx after it returns.
type Action func(ctx ActionContext) bool

// ActionContext is the view of a running parse that an [Action] receives.
//
// It describes the matcher that contains the action, usually a
// [KindSequence]: an action placed after some other element of a sequence
// can see what that element matched with [ActionContext.Matched].
type ActionContext interface {
	// Values returns the operand stack. Changes made through it are kept if
	// the action succeeds, and discarded if it fails.
	Values() *stack.Stack

	// Input returns the input being parsed.
	Input() input.Input

	// Matcher returns the matcher containing the action.
	Matcher() Matcher

	// Level returns the depth of the containing matcher; the root is at 0.
	Level() int

	// StartIndex returns where the containing matcher started matching.
	StartIndex() int

	// CurrentIndex returns the current position in the input.
	CurrentIndex() int

	// CurrentChar returns the character at the current position.
	CurrentChar() rune

	// InPredicate returns whether the action is running inside a [KindTest]
	// or [KindTestNot].
	InPredicate() bool

	// InErrorRecovery returns whether the action is being replayed by error
	// recovery. The return value of a replayed action is ignored.
	InErrorRecovery() bool

	// HasError returns whether the containing matcher has matched erroneous
	// input.
	HasError() bool

	// MarkError marks the containing matcher, and all of its ancestors, as
	// having matched erroneous input.
	MarkError()

	// Matched returns the text matched by the element immediately before
	// the action in its sequence. If that element matched erroneous input,
	// the text has had any corrections applied.
	//
	// Panics if the action is not in a sequence, or is its first element.
	Matched() string

	// MatchedStart returns the start index of the element immediately before
	// the action. It has the same preconditions as Matched.
	MatchedStart() int

	// MatchedEnd returns the end index of the element immediately before
	// the action. It has the same preconditions as Matched.
	MatchedEnd() int

	// MatchedChar returns the first character matched by the element
	// immediately before the action. It panics if that element matched
	// nothing.
	MatchedChar() rune

	// Position returns the line and column of the current index.
	Position() input.Position
}
