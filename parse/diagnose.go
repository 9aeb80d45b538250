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

import "github.com/bufbuild/pegkit/report"

// Diagnose converts the errors of a result into a report.
func Diagnose(result *Result) *report.Report {
	r := new(report.Report)
	for _, err := range result.Errors {
		r.Error(err)
	}
	if !result.Matched && len(result.Errors) == 0 {
		r.Errorf("input did not match").With(report.InFile(result.Input.Path()))
	}
	return r
}
