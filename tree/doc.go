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

// Package tree provides utilities for the parse trees built by the runners
// of package parse: printing, searching, indexing by offset, and exporting
// to protobuf.
//
// Every function here takes the input the tree was built from, since nodes
// only record spans. For trees built by [parse.Recovering], that is the
// corrected input in the result, not the one originally parsed.
package tree
