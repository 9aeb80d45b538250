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

package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/pegkit/grammar"
)

const calc = `
start: sum
rules:
  sum: [product, {zeroOrMore: [{char: "+"}, product, {action: add}]}]
  product: [atom, {zeroOrMore: [{char: "*"}, atom, {action: mul}]}]
  atom:
    first:
      - number
      - [{char: "("}, sum, {char: ")"}]
  number:
    seq: [{oneOrMore: {range: "0-9"}}, {action: pushInt}]
    suppressSubnodes: true
  alias: number
`

func TestLoad(t *testing.T) {
	t.Parallel()

	rules, err := grammar.Load([]byte(calc), nil)
	require.NoError(t, err)
	assert := assert.New(t)

	assert.True(rules.Graph.Finalized())
	assert.Equal("sum", rules.Root.Name())
	assert.Equal(rules.ByName["sum"], rules.Root)
	assert.Equal(rules.ByName["number"], rules.ByName["alias"])

	number := rules.ByName["number"]
	assert.Equal(grammar.KindSequence, number.Kind())
	assert.True(number.SubnodesSuppressed())
	assert.Equal("pushInt", number.Child(1).Name())

	// References to rules are resolved in place.
	atom := rules.ByName["atom"]
	assert.Equal(number, atom.Child(0))
	assert.Equal(rules.Root, atom.Child(1).Child(1))
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, yaml, err string
	}{
		{"no-rules", `start: a`, "missing rules"},
		{"bad-start", "start: b\nrules: {a: ANY}", `unknown start rule "b"`},
		{"undefined", "rules: {a: [b]}", `undefined rule "b"`},
		{"two-forms", "rules: {a: {char: x, string: y}}", `"string" conflicts with "char"`},
		{"bad-char", "rules: {a: {char: xy}}", "expected a single character"},
		{"bad-range", "rules: {a: {range: az}}", "expected a range"},
		{"bad-action", "rules: {a: {action: nope}}", `unknown action "nope"`},
		{"bad-form", "rules: {a: {nope: x}}", `unknown expression "nope"`},
		{"bad-flag", "rules: {a: {char: x, runInPredicate: true}}", "only applies to actions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := grammar.Load([]byte(tt.yaml), nil)
			assert.ErrorContains(t, err, tt.err)
		})
	}
}
