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

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const calc = "testdata/calc.yaml"

// pegkit runs the command line with args, returning what it printed.
func pegkit(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// inputs writes each text to its own file, returning the paths.
func inputs(t *testing.T, texts ...string) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for i, text := range texts {
		path := filepath.Join(dir, string(rune('a'+i))+".txt")
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
		paths = append(paths, path)
	}
	return paths
}

func TestParseValues(t *testing.T) {
	paths := inputs(t, "1+2*3", "2*(3+4)")

	stdout, stderr, err := pegkit(t, append([]string{"parse", "-g", calc}, paths...)...)
	require.NoError(t, err)
	assert.Equal(t, paths[0]+": 7\n"+paths[1]+": 14\n", stdout)
	assert.Empty(t, stderr)

	stdout, _, err = pegkit(t, append([]string{"parse", "-g", calc, "--runner", "basic", "-j", "1"}, paths...)...)
	require.NoError(t, err)
	assert.Equal(t, paths[0]+": 7\n"+paths[1]+": 14\n", stdout)
}

func TestParseTree(t *testing.T) {
	paths := inputs(t, "1+2")

	stdout, _, err := pegkit(t, "parse", "-g", calc, "--tree", paths[0])
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"[line] '1+2'",
		"  [sum] '1+2'",
		"    [product] '1'",
		"      [atom] '1'",
		"        [number] '1'",
		"      [ZeroOrMore] ''",
		"    [ZeroOrMore] '+2'",
		"      [Sequence] '+2'",
		"        ['+'] '+'",
		"        [product] '2'",
		"          [atom] '2'",
		"            [number] '2'",
		"          [ZeroOrMore] ''",
		"  [EOI] ''",
		"",
	}, "\n"), stdout)

	stdout, _, err = pegkit(t, "parse", "-g", calc, "--tree", "-f", "json", paths[0])
	require.NoError(t, err)
	var root map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &root))
	assert.Equal(t, "line", root["label"])
	assert.Equal(t, "1+2", root["text"])
	assert.InDelta(t, 3, root["value"], 0)

	stdout, _, err = pegkit(t, "parse", "-g", calc, "--tree", "-f", "protoscope", paths[0])
	require.NoError(t, err)
	assert.NotEmpty(t, stdout)
}

func TestParseErrors(t *testing.T) {
	paths := inputs(t, "1+x", "1+")

	_, stderr, err := pegkit(t, "parse", "-g", calc, "--compact", paths[0])
	require.EqualError(t, err, "1 of 1 inputs did not parse cleanly")
	assert.Contains(t, stderr, paths[0]+":1:3: error: invalid input 'x'\n")

	stdout, stderr, err := pegkit(t, "parse", "-g", calc, "-r", "recovering", paths[1])
	require.Error(t, err)
	assert.Equal(t, paths[1]+": 1\n", stdout)
	assert.Contains(t, stderr, strings.Join([]string{
		"error: unexpected end of input",
		" --> " + paths[1] + ":1:3",
		"  |",
		"1 | 1+",
		"  |   ^ expected product",
		"",
		"encountered 1 error",
		"",
	}, "\n"))

	_, _, err = pegkit(t, "parse", "-g", calc, "-r", "nope", paths[0])
	require.EqualError(t, err, "unknown runner: nope")
	_, _, err = pegkit(t, "parse", "-g", calc, "-f", "xml", paths[0])
	require.EqualError(t, err, "unknown format: xml")
	_, _, err = pegkit(t, "parse", paths[0])
	require.EqualError(t, err, "missing --grammar")
}

func TestTrace(t *testing.T) {
	paths := inputs(t, "1")

	stdout, _, err := pegkit(t, "trace", "-g", calc, "--rule", "number", paths[0])
	require.NoError(t, err)
	assert.Contains(t, stdout, "line/sum/product/atom/number, 1:1..1:2, matched\n")
	assert.NotContains(t, stdout, "line/sum, ")

	_, _, err = pegkit(t, "trace", "-g", calc, "--rule", "nope", paths[0])
	require.EqualError(t, err, "unknown rule: nope")
}

func TestProfile(t *testing.T) {
	paths := inputs(t, "1+2")

	stdout, _, err := pegkit(t, "profile", "-g", calc, "-n", "2", paths[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "2 runs in "), stdout)
	assert.Contains(t, stdout, "  number\n")
}
