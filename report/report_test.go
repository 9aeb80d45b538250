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

package report_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/pegkit/input"
	"github.com/bufbuild/pegkit/report"
)

func TestReport(t *testing.T) {
	t.Parallel()

	src := input.NewText("a.txt", "abc")
	r := new(report.Report)
	r.Warnf("second").With(report.Snippet(report.Span{Source: src, Start: 2, End: 3}))
	r.Error(&report.ErrInFile{Err: errors.New("first"), Path: "a.txt"})
	r.Errorf("tagged").With(report.Tag("my-tag"), report.Snippet(report.Span{Source: src, Start: 1, End: 2}))

	require.Equal(t, 3, r.Len())
	assert.True(t, r.HasErrors())

	r.Sort()
	var messages []string
	for _, d := range r.Diagnostics {
		messages = append(messages, d.Message())
	}
	assert.Equal(t, []string{"first", "tagged", "second"}, messages)
	assert.True(t, r.Diagnostics[1].Is("my-tag"))
	assert.Equal(t, report.Error, r.Diagnostics[1].Level())
	assert.Equal(t, 1, r.Diagnostics[1].Primary().Start)
	assert.True(t, r.Diagnostics[0].Primary().IsZero())

	err := &report.AsError{Report: r}
	assert.Equal(t, "a.txt: error: first\na.txt:1:2: error: tagged\na.txt:1:3: warning: second\n", err.Error())
}

func TestDiagnosticOptions(t *testing.T) {
	t.Parallel()

	r := new(report.Report)
	d := r.Errorf("once")
	assert.Panics(t, func() { d.With(report.Message("twice")) })
	assert.Panics(t, func() { d.With(report.Tag("a"), report.Tag("b")) })
	assert.NotPanics(t, func() { d.With(nil, report.Snippet(nil), report.Snippet(report.Span{})) })
	assert.True(t, d.Primary().IsZero())

	ice := r.ICE("oops")
	assert.Equal(t, report.ICE, ice.Level())
	text, errs, _ := report.Renderer{}.RenderString(r)
	assert.Equal(t, 2, errs)
	assert.Contains(t, text, "internal error: unexpected panic; this is a bug")
	assert.Contains(t, text, "= debug: oops")
}
