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

package report

import "github.com/bufbuild/pegkit/input"

// Source is a text that a [Span] points into. Every [input.Input] is a
// Source.
type Source interface {
	Path() string
	Position(index int) input.Position
	ExtractLine(line int) string
}

// Span is a range of character indices in a [Source].
type Span struct {
	Source     Source
	Start, End int
}

// Spanner is anything with a [Span].
type Spanner interface {
	Span() Span
}

// Span implements [Spanner].
func (s Span) Span() Span {
	return s
}

// IsZero returns whether this is the zero span, which points nowhere.
func (s Span) IsZero() bool {
	return s.Source == nil
}

// Path returns the path of the span's source.
func (s Span) Path() string {
	if s.IsZero() {
		return ""
	}
	return s.Source.Path()
}

// StartPos returns the position of the start of the span.
func (s Span) StartPos() input.Position {
	return s.Source.Position(s.Start)
}

// EndPos returns the position of the end of the span.
func (s Span) EndPos() input.Position {
	return s.Source.Position(s.End)
}
