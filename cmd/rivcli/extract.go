// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	riv "github.com/rivecodec/rivec"
	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	var (
		exact  bool
		strict bool
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "extract <in.container> <out.json>",
		Short: "Lift a .riv container to its universal JSON projection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, output := args[0], args[1]
			ctx := buildContext(strict, exact)
			f, err := riv.New(input, ctx)
			if err != nil {
				return exitError(2, "open %s: %v", input, err)
			}
			defer f.Close()

			doc, err := riv.Lift(f)
			if err != nil {
				return exitError(2, "lift %s: %v", input, err)
			}

			var buf []byte
			if pretty {
				buf, err = json.MarshalIndent(doc, "", "  ")
			} else {
				buf, err = json.Marshal(doc)
			}
			if err != nil {
				return exitError(2, "marshal JSON: %v", err)
			}

			if err := ioutil.WriteFile(output, buf, 0644); err != nil {
				return exitError(2, "write %s: %v", output, err)
			}

			if f.Report.HasErrors() {
				return exitError(1, "decoding reported errors (%d issue(s) in total)", len(f.Report.Issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&exact, "exact", false, "capture exact-mode metadata for byte-faithful reconstruction")
	cmd.Flags().BoolVar(&strict, "strict", false, "escalate warnings to hard errors")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "pretty-print the JSON output")
	return cmd
}

// exitError wraps an error so main's Execute/os.Exit path can report a
// deliberate exit code instead of the generic "cobra usage error" default.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }

func exitError(code int, format string, args ...interface{}) error {
	return &cliError{code: code, err: fmt.Errorf(format, args...)}
}

// exitCode extracts the intended process exit code from err, defaulting to
// 2 (fatal) for any error rivcli didn't originate itself.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if ce, ok := err.(*cliError); ok {
		return ce.code
	}
	return 2
}
