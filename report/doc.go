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

// Package report collects diagnostics and renders them for humans.
//
// Errors that know how to describe themselves implement [Diagnose]; a
// [Report] turns them into [Diagnostic] values, and a [Renderer] prints
// those either one per line, or in the style of the Rust compiler:
//
//	error: invalid input 'c', expected 'b'
//	 --> calc.txt:1:2
//	  |
//	1 | ac
//	  |  ^ expected 'b'
package report
