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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bufbuild/pegkit/parse"
)

func newProfileCmd() *cobra.Command {
	var (
		grammarPath string
		runs        int
	)

	cmd := &cobra.Command{
		Use:   "profile <file>...",
		Short: "Count what each matcher does while parsing files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadGrammar(grammarPath)
			if err != nil {
				return err
			}
			inputs, err := loadInputs(args)
			if err != nil {
				return err
			}
			if runs < 1 {
				return errors.New("--runs must be positive")
			}

			profile := new(parse.Profile)
			runner := parse.Profiling{Root: rules.Root, Profile: profile}
			for range runs {
				for _, in := range inputs {
					if _, err := runner.Run(cmd.Context(), in); err != nil {
						return err
					}
				}
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), profile)
			return err
		},
	}

	cmd.Flags().StringVarP(&grammarPath, "grammar", "g", "", "the YAML grammar file")
	cmd.Flags().IntVarP(&runs, "runs", "n", 1, "times to parse each file")

	return cmd
}
