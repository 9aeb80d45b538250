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
	"fmt"
	"strconv"
)

var builtins = map[string]Action{
	// Pushes the text matched by the preceding element.
	"push": func(ctx ActionContext) bool {
		ctx.Values().Push(ctx.Matched())
		return true
	},
	// Pushes the text matched by the preceding element, as an integer. During
	// error recovery, text that is not a number pushes 0.
	"pushInt": func(ctx ActionContext) bool {
		n, err := strconv.Atoi(ctx.Matched())
		if err != nil && !ctx.InErrorRecovery() {
			return false
		}
		ctx.Values().Push(n)
		return true
	},
	"add": binary(func(a, b int) (int, bool) { return a + b, true }),
	"sub": binary(func(a, b int) (int, bool) { return a - b, true }),
	"mul": binary(func(a, b int) (int, bool) { return a * b, true }),
	"div": binary(func(a, b int) (int, bool) {
		if b == 0 {
			return 0, false
		}
		return a / b, true
	}),
	"neg": func(ctx ActionContext) bool {
		values := ctx.Values()
		values.Poke(-toInt(values.Peek()))
		return true
	},
	"drop": func(ctx ActionContext) bool {
		ctx.Values().Pop()
		return true
	},
}

// Builtins returns the actions available to every grammar built with
// [Load]:
//
//   - push: pushes the text matched by the preceding element.
//   - pushInt: pushes the same text, parsed as an integer.
//   - add, sub, mul, div: pop b, pop a, push a op b.
//   - neg: negates the top of the stack.
//   - drop: pops the top of the stack.
//
// The returned map must not be modified.
func Builtins() map[string]Action {
	return builtins
}

// binary lifts an integer operation to an action on the top two values. The
// operands are consumed even if the operation fails, since a failing action
// has its changes to the stack discarded.
func binary(op func(a, b int) (int, bool)) Action {
	return func(ctx ActionContext) bool {
		values := ctx.Values()
		b := toInt(values.Pop())
		a := toInt(values.Pop())
		v, ok := op(a, b)
		if !ok && !ctx.InErrorRecovery() {
			return false
		}
		values.Push(v)
		return true
	}
}

func toInt(v any) int {
	switch v := v.(type) {
	case int:
		return v
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		panic(fmt.Sprintf("grammar: expected a number on the operand stack, got %T", v))
	}
}
