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

// Package grammar defines parsing expression grammars as graphs of
// matchers.
//
// A grammar is built in two phases. First, matchers are created with the
// constructor methods of a [Graph]; a rule that refers to itself, or to a
// rule not built yet, does so through a [Graph.Proxy]. Then
// [Graph.Finalize] resolves every proxy and seals the graph, after which it
// can be shared by any number of parses. See package parse for running a
// grammar.
//
// Grammars can also be written in YAML and built with [Load].
package grammar

//go:generate go run github.com/bufbuild/pegkit/internal/enum kind.yaml
