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

// Package parse runs grammars built with package grammar over inputs.
//
// A parse is a walk of the matcher graph driven by a chain of [Context]
// values, one per nesting level. Every matcher activation goes through a
// [MatchHandler], and the different runners are different handlers:
//
//   - [Basic] matches and builds a parse tree, and nothing else.
//   - [ErrorLocating] finds the index of the first error.
//   - [ErrorReporting] records which matchers failed at a known error index.
//   - [Reporting] combines the three to report the first error in an input.
//   - [Recovering] repairs the input as it goes, so that every finite input
//     produces a parse tree, along with an error for each repair.
//
// [Tracing] and [Profiling] wrap the same seam to observe a parse without
// changing its outcome.
//
// Mismatches are not failures: a run that does not match returns a [Result]
// whose Matched field is false. Broken grammars and actions that break
// their contract, such as popping an empty operand stack, panic with a
// [*Fault] describing where the walk was.
package parse

//go:generate go run github.com/bufbuild/pegkit/internal/enum error_kind.yaml
