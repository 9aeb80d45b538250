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

package parse_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/pegkit/grammar"
	"github.com/bufbuild/pegkit/input"
	"github.com/bufbuild/pegkit/internal/golden"
	"github.com/bufbuild/pegkit/parse"
	"github.com/bufbuild/pegkit/report"
	"github.com/bufbuild/pegkit/tree"
)

// TestRecoveringGolden runs each case under testdata/recovering through a
// [parse.Recovering] runner, and compares the tree and the rendered
// diagnostics with the expected ones.
//
// Set PEGKIT_REFRESH to a glob to rewrite the expected outputs of the
// matching cases.
func TestRecoveringGolden(t *testing.T) {
	t.Parallel()

	corpus := golden.Corpus{
		Root:      "testdata/recovering",
		Refresh:   "PEGKIT_REFRESH",
		Extension: "yaml",
		Outputs: []golden.Output{
			{Extension: "tree"},
			{Extension: "stderr"},
		},
	}
	corpus.Test = func(t *testing.T, path, text string) []string {
		var c struct {
			Grammar string `yaml:"grammar"`
			Input   string `yaml:"input"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(text), &c))

		rules, err := grammar.Load([]byte(c.Grammar), nil)
		require.NoError(t, err)

		result, err := parse.Recovering{Root: rules.Root}.Run(context.Background(), input.NewText("input", c.Input))
		require.NoError(t, err)
		require.True(t, result.Matched)

		stderr, _, _ := report.Renderer{}.RenderString(parse.Diagnose(result))
		return []string{tree.Sprint(result.Root, result.Input), stderr}
	}
	corpus.Run(t)
}
