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

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/protocolbuffers/protoscope"
	"github.com/spf13/cobra"

	"github.com/bufbuild/pegkit/grammar"
	"github.com/bufbuild/pegkit/parse"
	"github.com/bufbuild/pegkit/report"
	"github.com/bufbuild/pegkit/tree"
)

func newParseCmd() *cobra.Command {
	var (
		grammarPath  string
		runnerName   string
		timeout      time.Duration
		printTree    bool
		outputFormat string
		jobs         int
		compact      bool
		color        bool
	)

	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse files and print their values, trees and errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadGrammar(grammarPath)
			if err != nil {
				return err
			}
			runner, err := newRunner(runnerName, rules.Root, timeout)
			if err != nil {
				return err
			}
			write, err := treeWriter(outputFormat)
			if err != nil {
				return err
			}
			inputs, err := loadInputs(args)
			if err != nil {
				return err
			}

			results, err := parse.RunAll(cmd.Context(), runner, inputs, jobs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			diagnostics := new(report.Report)
			var failed int
			for _, result := range results {
				path := result.Input.Path()
				if !result.Matched || result.HasErrors() {
					failed++
				}
				diagnostics.Diagnostics = append(diagnostics.Diagnostics, parse.Diagnose(result).Diagnostics...)

				switch {
				case printTree && result.Root != nil:
					if err := write(out, result); err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
				case result.Matched && result.Value() != nil:
					fmt.Fprintf(out, "%s: %v\n", path, result.Value())
				}
			}

			renderer := report.Renderer{Compact: compact, Colorize: color}
			if _, _, err := renderer.Render(diagnostics, cmd.ErrOrStderr()); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d inputs did not parse cleanly", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&grammarPath, "grammar", "g", "", "the YAML grammar file")
	cmd.Flags().StringVarP(&runnerName, "runner", "r", "reporting", "runner to use (basic, reporting, recovering)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up error recovery after this long")
	cmd.Flags().BoolVar(&printTree, "tree", false, "print the parse tree of each file")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "tree format (text, json, protoscope)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "files to parse at once; defaults to the number of CPUs")
	cmd.Flags().BoolVar(&compact, "compact", false, "print one line per diagnostic")
	cmd.Flags().BoolVar(&color, "color", false, "colorize diagnostics")

	return cmd
}

func newRunner(name string, root grammar.Matcher, timeout time.Duration) (parse.Runner, error) {
	switch name {
	case "basic":
		return parse.Basic{Root: root}, nil
	case "reporting":
		return parse.Reporting{Root: root}, nil
	case "recovering":
		return parse.Recovering{Root: root, Timeout: timeout}, nil
	default:
		return nil, fmt.Errorf("unknown runner: %s", name)
	}
}

func treeWriter(format string) (func(io.Writer, *parse.Result) error, error) {
	switch format {
	case "text":
		return func(w io.Writer, r *parse.Result) error {
			return tree.Print(w, r.Root, r.Input)
		}, nil
	case "json":
		return func(w io.Writer, r *parse.Result) error {
			data, err := tree.MarshalJSON(r.Root, r.Input)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(w, "%s\n", data)
			return err
		}, nil
	case "protoscope":
		return func(w io.Writer, r *parse.Result) error {
			data, err := tree.MarshalWire(r.Root, r.Input)
			if err != nil {
				return err
			}
			_, err = io.WriteString(w, protoscope.Write(data, protoscope.WriterOptions{}))
			return err
		}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
