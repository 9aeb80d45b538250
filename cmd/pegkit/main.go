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

// Command pegkit runs grammars loaded from YAML files over input files.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		verbosity int
		logPath   string
	)

	cmd := &cobra.Command{
		Use:          "pegkit",
		Short:        "Run PEG grammars over text",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			var path *string
			if logPath != "" {
				path = &logPath
			}
			commonlog.Configure(verbosity, path)
		},
	}

	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity; repeat for more")
	cmd.PersistentFlags().StringVar(&logPath, "log", "", "write the log to this file instead of stderr")

	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newTraceCmd())
	cmd.AddCommand(newProfileCmd())
	return cmd
}
