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

// Package golden runs golden tests: table-driven tests whose table is a
// directory of test case files, each with files holding its expected
// outputs next to it.
package golden

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus is a directory of golden test cases.
type Corpus struct {
	// The directory holding the test cases, relative to the file that calls
	// [Corpus.Run].
	Root string

	// An environment variable that, if set to a glob, causes the outputs of
	// the test cases matching it to be rewritten instead of compared.
	Refresh string

	// The extension of test case files, without a dot, e.g. "yaml".
	Extension string

	// The outputs of each test case. For a test case foo.yaml, the output
	// with extension "tree" is expected to be in foo.yaml.tree. A missing
	// output file is treated as an empty expected output.
	Outputs []Output

	// Test runs one test case, and returns one string per element of
	// Outputs.
	Test func(t *testing.T, path, text string) []string
}

// Output is one of the outputs of a test case.
type Output struct {
	Extension string

	// Compares an output with the expected one. If nil, they are compared
	// byte for byte.
	Compare Compare
}

// Compare compares an output with its expected value, returning a
// description of the difference, or "" if they match.
type Compare func(got, want string) string

// Run runs every test case in the corpus as a subtest.
func (c Corpus) Run(t *testing.T) {
	t.Helper()

	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)

	tests, err := doublestar.Glob(os.DirFS(root), "**/*."+c.Extension)
	if err != nil {
		t.Fatalf("golden: error while searching %q: %v", root, err)
	}
	if len(tests) == 0 {
		t.Fatalf("golden: no test cases in %q", root)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("golden: invalid glob in %s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		// Refreshing always fails, so it cannot be left on by accident.
		t.Logf("golden: refreshing test data because %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, name := range tests {
		path := filepath.Join(root, filepath.FromSlash(name))
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("golden: error while loading test case: %v", err)
			}

			results := c.Test(t, name, string(data))
			if len(results) != len(c.Outputs) {
				t.Fatalf("golden: got %d outputs, want %d", len(results), len(c.Outputs))
			}

			rewrite := false
			if refresh != "" {
				rewrite, _ = doublestar.Match(refresh, name)
			}
			for i, output := range c.Outputs {
				c.check(t, fmt.Sprint(path, ".", output.Extension), results[i], output.Compare, rewrite)
			}
		})
	}
}

func (c Corpus) check(t *testing.T, path, got string, compare Compare, rewrite bool) {
	t.Helper()

	if rewrite {
		var err error
		if got == "" {
			err = os.Remove(path)
		} else {
			err = os.WriteFile(path, []byte(got), 0o644)
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("golden: error while refreshing %q: %v", path, err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("golden: error while loading %q: %v", path, err)
		return
	}
	if compare == nil {
		compare = Diff
	}
	if diff := compare(got, string(want)); diff != "" {
		t.Errorf("output mismatch for %q:\n%s", path, diff)
	}
}

// Diff compares two strings byte for byte, describing any difference with
// a colorized unified diff.
func Diff(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}

	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = "\033[1;92m" + line + "\033[0m"
		case strings.HasPrefix(line, "-"):
			lines[i] = "\033[1;91m" + line + "\033[0m"
		}
	}
	return strings.Join(lines, "\n")
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("golden: could not determine the test file's directory")
	}
	return filepath.Dir(file)
}
