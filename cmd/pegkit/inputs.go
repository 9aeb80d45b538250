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
	"errors"
	"fmt"
	"os"

	"github.com/bufbuild/pegkit/grammar"
	"github.com/bufbuild/pegkit/input"
)

// loadGrammar loads the grammar file at path, with the builtin actions.
func loadGrammar(path string) (*grammar.Rules, error) {
	if path == "" {
		return nil, errors.New("missing --grammar")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}
	rules, err := grammar.Load(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// loadInputs reads each of paths into an input.
func loadInputs(paths []string) ([]input.Input, error) {
	inputs := make([]input.Input, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		inputs = append(inputs, input.NewText(path, string(data)))
	}
	return inputs, nil
}
