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

package parse

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/bufbuild/pegkit/grammar"
	"github.com/bufbuild/pegkit/input"
	"github.com/bufbuild/pegkit/internal"
	"github.com/bufbuild/pegkit/report"
)

// ParseError is an error in the input of a run.
type ParseError struct {
	Kind ErrorKind

	// The erroneous span, as indices into Input.
	Start, End int
	Input      input.Input

	// For [ErrorInvalidInput], the paths to the matchers that failed at
	// Start. Any of them matching would have let the parse continue.
	Failed []*Path

	// How far Start has moved since Failed was recorded, because error
	// recovery inserted characters before it. Paths keep the indices they
	// were recorded with.
	shift int
}

var (
	_ error           = (*ParseError)(nil)
	_ report.Diagnose = (*ParseError)(nil)
	_ report.Spanner  = (*ParseError)(nil)
)

// Original returns the erroneous span as indices into the text the user
// provided, undoing any characters that error recovery inserted.
func (e *ParseError) Original() (start, end int) {
	return e.Input.OriginalIndex(e.Start), e.Input.OriginalIndex(e.End)
}

// Expected returns the labels of the matchers that would have matched at the
// error, without duplicates.
//
// For each failed path, the label is that of the outermost matcher that
// started at the error and has a custom label or is a string, falling back
// to the matcher that actually failed. Paths through a negative lookahead
// are ignored, since "expected not x" is not useful to report.
func (e *ParseError) Expected() []string {
	var labels []string
	seen := make(map[string]bool)
	for _, path := range e.Failed {
		label, ok := expectedLabel(path, e.Start-e.shift)
		if !ok || seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	return labels
}

func expectedLabel(path *Path, index int) (string, bool) {
	if path.Len() == 0 || throughTestNot(path) {
		return "", false
	}
	for _, elem := range path.All() {
		m := elem.Matcher
		if elem.Start == index && (m.HasCustomLabel() || m.Kind() == grammar.KindString) {
			return m.Name(), true
		}
	}
	return path.Head().Matcher.Name(), true
}

// Span implements [report.Spanner].
func (e *ParseError) Span() report.Span {
	end := e.End
	if end <= e.Start && e.Input.CharAt(e.Start) != input.EOI {
		end = e.Start + 1
	}
	return report.Span{Source: e.Input, Start: e.Start, End: end}
}

// Error implements [error].
func (e *ParseError) Error() string {
	prefix := e.Input.Position(e.Start).String()
	if path := e.Input.Path(); path != "" {
		prefix = path + ":" + prefix
	}
	return prefix + ": " + e.message()
}

// Diagnose implements [report.Diagnose].
func (e *ParseError) Diagnose(d *report.Diagnostic) {
	var note string
	if expected := e.Expected(); len(expected) > 0 {
		note = fmt.Sprintf("expected %v", internal.Oxford[string]{Conjunction: "or", Elements: expected})
	}
	d.With(
		report.Message("%s", e.summary()),
		report.Snippet(e, "%s", note),
	)
}

// summary describes what was found, without the expectations.
func (e *ParseError) summary() string {
	if e.Kind == ErrorGeneric {
		return "parse error"
	}

	found := e.found()
	switch utf8.RuneCountInString(found) {
	case 0:
		return "unexpected end of input"
	case 1:
		r, _ := utf8.DecodeRuneInString(found)
		return "invalid input " + strconv.QuoteRune(r)
	default:
		return "invalid input " + strconv.Quote(found)
	}
}

func (e *ParseError) message() string {
	msg := e.summary()
	if expected := e.Expected(); len(expected) > 0 {
		msg = fmt.Sprintf("%s, expected %v", msg,
			internal.Oxford[string]{Conjunction: "or", Elements: expected})
	}
	return msg
}

// found returns the text the user wrote at the error.
func (e *ParseError) found() string {
	in, start, end := e.Input, e.Start, e.End
	if m, ok := in.(*input.Mutable); ok {
		in = m.Base()
		start, end = e.Original()
	}
	if end <= start {
		end = start + 1
	}
	return in.Extract(start, end)
}

// TimeoutError is returned by [Recovering] when it runs out of time.
type TimeoutError struct {
	// The result of matching the input without recovery, along with the
	// errors found before time ran out.
	Result *Result
	Cause  error // The context's error, if it was canceled.
}

// Error implements [error].
func (e *TimeoutError) Error() string {
	if e.Cause != nil {
		return "parse: error recovery interrupted: " + e.Cause.Error()
	}
	return "parse: error recovery timed out"
}

// Unwrap returns the cause of the timeout.
func (e *TimeoutError) Unwrap() error {
	return e.Cause
}
