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
	"bytes"
	"io"
	"strings"
	"unicode"
)

// writer buffers output a line at a time, so that no line is printed with
// trailing whitespace.
//
// The first write error is retained and returned by Flush; writes after it
// are discarded.
type writer struct {
	out io.Writer
	buf []byte // Never contains a '\n' byte.
	err error
}

func (w *writer) WriteSpaces(n int) {
	w.buf = append(w.buf, strings.Repeat(" ", n)...)
}

func (w *writer) WriteString(data string) {
	for line := range strings.Lines(data) {
		text, newline := strings.CutSuffix(line, "\n")
		w.buf = append(w.buf, text...)
		if newline {
			w.flush(true)
		}
	}
}

// Flush writes out any partial line.
func (w *writer) Flush() error {
	w.flush(false)
	return w.err
}

func (w *writer) flush(withNewline bool) {
	w.buf = bytes.TrimRightFunc(w.buf, unicode.IsSpace)
	if withNewline {
		w.buf = append(w.buf, '\n')
	}
	if w.err == nil && len(w.buf) > 0 {
		_, w.err = w.out.Write(w.buf)
	}
	w.buf = w.buf[:0]
}

// plural is a helper for printing out plurals of numbers.
type plural int

// String implements [fmt.Stringer].
func (p plural) String() string {
	if p == 1 {
		return ""
	}
	return "s"
}
