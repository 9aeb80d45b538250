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

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Renderer configures a diagnostic rendering operation.
type Renderer struct {
	// If set, uses a compact one-line format for each diagnostic.
	Compact bool

	// If set, rendering results are enriched with ANSI color escapes.
	Colorize bool

	// If set, remark diagnostics will be printed.
	ShowRemarks bool

	// If set, rendering a diagnostic will show the debug footer.
	ShowDebug bool
}

// Render renders a diagnostic report.
//
// Returns the number of errors and warnings rendered; err is only set if
// writing to out failed.
func (r Renderer) Render(report *Report, out io.Writer) (errorCount, warningCount int, err error) {
	w := &writer{out: out}
	c := newStyleSheet(r)

	for i := range report.Diagnostics {
		d := &report.Diagnostics[i]
		if !r.ShowRemarks && d.level == Remark {
			continue
		}

		switch d.level {
		case Error, ICE:
			errorCount++
		case Warning:
			warningCount++
		}

		if r.Compact {
			r.compact(w, &c, d)
			continue
		}
		r.diagnostic(w, &c, d)
		w.WriteString("\n")
	}

	if !r.Compact && errorCount+warningCount > 0 {
		switch {
		case errorCount > 0 && warningCount > 0:
			w.WriteString(fmt.Sprintf("%sencountered %d error%v and %d warning%v%s\n",
				c.bError, errorCount, plural(errorCount), warningCount, plural(warningCount), c.reset))
		case errorCount > 0:
			w.WriteString(fmt.Sprintf("%sencountered %d error%v%s\n",
				c.bError, errorCount, plural(errorCount), c.reset))
		default:
			w.WriteString(fmt.Sprintf("%sencountered %d warning%v%s\n",
				c.bWarning, warningCount, plural(warningCount), c.reset))
		}
	}

	return errorCount, warningCount, w.Flush()
}

// RenderString is a helper for calling [Renderer.Render] with a
// [strings.Builder].
func (r Renderer) RenderString(report *Report) (text string, errorCount, warningCount int) {
	var buf strings.Builder
	e, w, _ := r.Render(report, &buf)
	return buf.String(), e, w
}

// compact renders d on one line, in the style of the Go compiler.
func (r Renderer) compact(w *writer, c *styleSheet, d *Diagnostic) {
	var where string
	if span := d.Primary(); !span.IsZero() {
		where = location(span) + ": "
	} else if d.inFile != "" {
		where = d.inFile + ": "
	}
	w.WriteString(fmt.Sprintf("%s%s%s: %s%s\n", c.ColorForLevel(d.level), where, d.level, d.message, c.reset))
}

// diagnostic renders d in the style of the Rust compiler.
func (r Renderer) diagnostic(w *writer, c *styleSheet, d *Diagnostic) {
	w.WriteString(fmt.Sprintf("%s%s: %s%s\n", c.BoldForLevel(d.level), d.level, d.message, c.reset))

	// The gutter is as wide as the largest line number.
	var greatestLine int
	for _, a := range d.annotations {
		greatestLine = max(greatestLine, a.StartPos().Line)
	}
	gutter := len(strconv.Itoa(greatestLine))

	var lastPath string
	for i, a := range d.annotations {
		if i == 0 || a.Path() != lastPath {
			arrow := "-->"
			if i > 0 {
				arrow = ":::"
			}
			w.WriteString(c.nAccent)
			w.WriteSpaces(gutter)
			w.WriteString(fmt.Sprintf("%s %s\n", arrow, location(a.Span)))
			w.WriteSpaces(gutter)
			w.WriteString(" |\n")
			lastPath = a.Path()
		}
		r.snippet(w, c, d.level, gutter, a)
	}

	if len(d.annotations) == 0 && d.inFile != "" {
		w.WriteString(c.nAccent)
		w.WriteSpaces(gutter)
		w.WriteString(fmt.Sprintf("--> %s%s\n", d.inFile, c.reset))
	}

	type footer struct{ color, kind, text string }
	var footers []footer
	for _, note := range d.notes {
		footers = append(footers, footer{c.bRemark, "note", note})
	}
	for _, help := range d.help {
		footers = append(footers, footer{c.bRemark, "help", help})
	}
	if r.ShowDebug || d.level == ICE {
		for _, debug := range d.debug {
			footers = append(footers, footer{c.bError, "debug", debug})
		}
	}
	for _, f := range footers {
		w.WriteString(c.nAccent)
		w.WriteSpaces(gutter)
		w.WriteString(fmt.Sprintf(" = %s%s: %s", f.color, f.kind, c.reset))
		for i, line := range strings.Split(f.text, "\n") {
			if i > 0 {
				w.WriteSpaces(gutter + 3 + len(f.kind) + 2)
			}
			w.WriteString(line + "\n")
		}
	}
	w.WriteString(c.reset)
}

// snippet renders the line an annotation starts on, and underlines the
// annotated part of it.
func (r Renderer) snippet(w *writer, c *styleSheet, level Level, gutter int, a annotation) {
	start, end := a.StartPos(), a.EndPos()
	line := []rune(a.Source.ExtractLine(start.Line))

	w.WriteString(fmt.Sprintf("%s%*d |%s ", c.nAccent, gutter, start.Line, c.reset))
	stringWidth(0, string(line), w)
	w.WriteString("\n")

	startCol := min(start.Column-1, len(line))
	endCol := len(line)
	if end.Line == start.Line {
		endCol = min(end.Column-1, len(line))
	}
	offset := stringWidth(0, string(line[:startCol]), nil)
	width := stringWidth(offset, string(line[startCol:max(startCol, endCol)]), nil) - offset

	color, mark := c.nAccent, "-"
	if a.primary {
		color, mark = c.ColorForLevel(level), "^"
	}
	w.WriteString(c.nAccent)
	w.WriteSpaces(gutter)
	w.WriteString(" | ")
	w.WriteSpaces(offset)
	w.WriteString(color + strings.Repeat(mark, max(1, width)))
	if a.message != "" {
		w.WriteString(" " + a.message)
	}
	w.WriteString(c.reset + "\n")
}

// location formats the start of a span as path:line:col.
func location(s Span) string {
	pos := s.StartPos().String()
	if path := s.Path(); path != "" {
		return path + ":" + pos
	}
	return pos
}
