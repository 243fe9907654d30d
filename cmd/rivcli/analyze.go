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

func newAnalyzeCmd() *cobra.Command {
	var (
		strict      bool
		dumpCatalog bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <file.riv>",
		Short: "Validate a .riv container and report its round-trip growth",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Growth is measured against a minimal (non-exact) re-encoding,
			// since exact mode would always reproduce the input verbatim.
			ctx := buildContext(strict, false)
			raw, err := ioutil.ReadFile(args[0])
			if err != nil {
				return exitError(2, "read %s: %v", args[0], err)
			}

			f, err := riv.NewBytes(raw, ctx)
			if err != nil {
				return exitError(2, "decode %s: %v", args[0], err)
			}
			defer f.Close()

			report := f.Validate()
			for _, issue := range f.Report.Issues {
				report.Add(issue)
			}

			out, err := f.Encode()
			if err != nil {
				fmt.Printf("re-encoding failed: %v\n", err)
			} else {
				delta := riv.Diff(f, f, raw, out)
				fmt.Printf("size: %d -> %d bytes (%.2f%%, %s)\n", delta.SizeBefore, delta.SizeAfter,
					delta.SizeGrowthPercent, delta.Classify())
				fmt.Printf("objects: %d -> %d\n", delta.ObjectCountBefore, delta.ObjectCountAfter)
				fmt.Printf("chunks: %d -> %d\n", delta.ChunkCountBefore, delta.ChunkCountAfter)
			}

			if dumpCatalog {
				for _, k := range f.Header.PropertyKeys {
					fmt.Printf("property %d: %s\n", k, f.Catalog.PropertyName(f.Header.Major, k))
				}
			}

			for typeKey, count := range f.Report.OpaqueTypeKeys {
				fmt.Printf("opaque type %d: %d record(s)\n", typeKey, count)
			}

			if asJSON {
				buf, err := json.MarshalIndent(report.Issues, "", "  ")
				if err != nil {
					return exitError(2, "marshal report: %v", err)
				}
				fmt.Println(string(buf))
			} else {
				for _, issue := range report.Issues {
					fmt.Println(issue.String())
				}
			}

			if report.HasErrors() {
				return exitError(1, "validation reported errors (%d issue(s) in total)", len(report.Issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "escalate warnings to hard errors")
	cmd.Flags().BoolVar(&dumpCatalog, "dump-catalog", false, "print the resolved name of every declared property key")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report's issues as JSON")
	return cmd
}
