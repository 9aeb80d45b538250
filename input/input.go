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

// Package input provides the character sources that grammars are matched
// against.
//
// Inputs are indexed by rune, not by byte: index i refers to the i-th
// character of the text. Reading past the end yields [EOI].
package input

import "fmt"

// Sentinel characters.
//
// These are Unicode noncharacters, which never appear in interchanged text,
// so they cannot collide with real input. [EOI] is what [Input.CharAt]
// returns past the end of the input; the rest are only ever spliced into a
// [Mutable] by error recovery.
const (
	EOI         rune = '\uFFFF' // End of input.
	Del         rune = '\uFDEA' // The following character is deleted.
	Ins         rune = '\uFDE9' // The following character was inserted.
	Resync      rune = '\uFDEB' // Resynchronize here on the next run.
	ResyncStart rune = '\uFDEC' // Start of a skipped span.
	ResyncEnd   rune = '\uFDED' // End of a skipped span.
	ResyncEOI   rune = '\uFDEE' // A skipped span that runs to the end of input.
)

// IsSentinel returns whether c is one of the sentinel characters spliced in by
// error recovery. [EOI] is not considered a sentinel.
func IsSentinel(c rune) bool {
	switch c {
	case Del, Ins, Resync, ResyncStart, ResyncEnd, ResyncEOI:
		return true
	default:
		return false
	}
}

// Input is an indexable character sequence.
type Input interface {
	// Path returns the name of this input, used in diagnostics. May be empty.
	Path() string

	// Len returns the number of characters in this input.
	Len() int

	// CharAt returns the character at index, or [EOI] if index is out of
	// range.
	CharAt(index int) rune

	// Test returns whether the characters starting at index are exactly
	// chars. This is used for bulk string comparisons.
	Test(index int, chars []rune) bool

	// Extract returns the text in [start, end), clamped to the input.
	Extract(start, end int) string

	// ExtractLine returns the given 1-indexed line, without its trailing
	// newline.
	ExtractLine(line int) string

	// LineCount returns the number of lines in the input.
	LineCount() int

	// Position converts an index into a 1-indexed line and column.
	Position(index int) Position

	// OriginalIndex maps an index in this input to an index in the text that
	// the user actually provided. This is the identity, except for inputs
	// that have had characters spliced in.
	OriginalIndex(index int) int
}

// Position is a line and column pair, both 1-indexed. Columns count runes.
type Position struct {
	Line, Column int
}

// String implements [fmt.Stringer].
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Escape returns a printable version of c, naming sentinels and escaping
// control characters.
func Escape(c rune) string {
	switch c {
	case EOI:
		return "EOI"
	case Del:
		return "DEL_ERROR"
	case Ins:
		return "INS_ERROR"
	case Resync:
		return "RESYNC"
	case ResyncStart:
		return "RESYNC_START"
	case ResyncEnd:
		return "RESYNC_END"
	case ResyncEOI:
		return "RESYNC_EOI"
	case '\r':
		return `\r`
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\f':
		return `\f`
	}
	if c < ' ' {
		return fmt.Sprintf(`\u%04x`, c)
	}
	return string(c)
}

// EscapeString applies [Escape] to every character of s.
func EscapeString(s string) string {
	var out []byte
	for _, c := range s {
		out = append(out, Escape(c)...)
	}
	return string(out)
}
