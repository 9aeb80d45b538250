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
	"cmp"
	"fmt"
	"slices"
)

// Diagnose is a type that can be rendered as a diagnostic.
type Diagnose interface {
	// Diagnose writes out this value to the given diagnostic.
	//
	// This function should not set the level; that is set by the
	// [Report] method that created d.
	Diagnose(d *Diagnostic)
}

// Report is a collection of diagnostics.
//
// A zero Report is empty and ready to use.
type Report struct {
	Diagnostics []Diagnostic
}

// Error pushes an error diagnostic onto this report.
func (r *Report) Error(err Diagnose) *Diagnostic {
	d := r.push(Error)
	err.Diagnose(d)
	return d
}

// Warn pushes a warning diagnostic onto this report.
func (r *Report) Warn(err Diagnose) *Diagnostic {
	d := r.push(Warning)
	err.Diagnose(d)
	return d
}

// Remark pushes a remark diagnostic onto this report.
func (r *Report) Remark(err Diagnose) *Diagnostic {
	d := r.push(Remark)
	err.Diagnose(d)
	return d
}

// Errorf creates a new error diagnostic with the given message.
func (r *Report) Errorf(format string, args ...any) *Diagnostic {
	return r.push(Error).With(Message(format, args...))
}

// Warnf creates a new warning diagnostic with the given message.
func (r *Report) Warnf(format string, args ...any) *Diagnostic {
	return r.push(Warning).With(Message(format, args...))
}

// Remarkf creates a new remark diagnostic with the given message.
func (r *Report) Remarkf(format string, args ...any) *Diagnostic {
	return r.push(Remark).With(Message(format, args...))
}

// ICE pushes a diagnostic for a panic that aborted some operation.
func (r *Report) ICE(panicked any) *Diagnostic {
	return r.push(ICE).With(
		Message("unexpected panic; this is a bug"),
		Debug("%v", panicked),
	)
}

// Sort sorts the diagnostics by file, then by position, keeping diagnostics
// without a position ahead of those with one.
func (r *Report) Sort() {
	slices.SortStableFunc(r.Diagnostics, func(a, b Diagnostic) int {
		pa, pb := a.Primary(), b.Primary()
		return cmp.Or(
			cmp.Compare(pa.Path()+a.inFile, pb.Path()+b.inFile),
			cmp.Compare(startOf(pa), startOf(pb)),
		)
	})
}

// Len returns the number of diagnostics in the report.
func (r *Report) Len() int {
	return len(r.Diagnostics)
}

// HasErrors returns whether the report contains any error or internal error
// diagnostics.
func (r *Report) HasErrors() bool {
	return slices.ContainsFunc(r.Diagnostics, func(d Diagnostic) bool {
		return d.level == Error || d.level == ICE
	})
}

// String implements [fmt.Stringer], rendering the report compactly.
func (r *Report) String() string {
	text, _, _ := Renderer{Compact: true}.RenderString(r)
	return text
}

func (r *Report) push(level Level) *Diagnostic {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{level: level})
	return &r.Diagnostics[len(r.Diagnostics)-1]
}

func startOf(s Span) int {
	if s.IsZero() {
		return -1
	}
	return s.Start
}

var _ fmt.Stringer = (*Report)(nil)
