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

	"github.com/spf13/cobra"

	"github.com/bufbuild/pegkit/parse"
)

func newTraceCmd() *cobra.Command {
	var (
		grammarPath string
		rule        string
		toLog       bool
	)

	cmd := &cobra.Command{
		Use:   "trace <file>",
		Short: "Print every matcher activation while parsing a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadGrammar(grammarPath)
			if err != nil {
				return err
			}
			inputs, err := loadInputs(args)
			if err != nil {
				return err
			}

			runner := parse.Tracing{Root: rules.Root}
			if !toLog {
				runner.Out = cmd.OutOrStdout()
			}
			if rule != "" {
				if _, ok := rules.ByName[rule]; !ok {
					return fmt.Errorf("unknown rule: %s", rule)
				}
				runner.Filter = parse.OnlyRule(rule)
			}

			result, err := runner.Run(cmd.Context(), inputs[0])
			if err != nil {
				return err
			}
			if !result.Matched {
				return fmt.Errorf("%s: input did not match", inputs[0].Path())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&grammarPath, "grammar", "g", "", "the YAML grammar file")
	cmd.Flags().StringVar(&rule, "rule", "", "only trace activations within this rule")
	cmd.Flags().BoolVar(&toLog, "to-log", false, "log the trace at debug level instead of printing it")

	return cmd
}
