// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Command rivcli is the reference command-line front end for the rivec
// codec: extract a container to its universal JSON projection, convert a
// universal JSON document back into a container, and analyze a
// container's structure and round-trip growth.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	rootCmd := &cobra.Command{
		Use:           "rivcli",
		Short:         "Inspect and convert RIVE scene-graph containers",
		Long:          "rivcli decodes, validates, and re-serializes .riv vector-animation containers.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging to stderr")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newAnalyzeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the rivcli version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("rivcli 0.1.0")
		},
	}
}
