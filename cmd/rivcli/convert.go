// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"io/ioutil"

	riv "github.com/rivecodec/rivec"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var (
		exact  bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "convert <in.json> <out.container>",
		Short: "Lower a universal JSON document back into a .riv container",
		Long: "convert is the inverse of extract: it lowers a universal JSON " +
			"document into a .riv container, optionally requiring --exact " +
			"byte-faithful reconstruction of the original document's structure.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, output := args[0], args[1]
			ctx := buildContext(strict, exact)

			raw, err := ioutil.ReadFile(input)
			if err != nil {
				return exitError(2, "read %s: %v", input, err)
			}
			var doc riv.Document
			if err := json.Unmarshal(raw, &doc); err != nil {
				return exitError(2, "parse JSON %s: %v", input, err)
			}
			f, err := riv.Lower(&doc, ctx)
			if err != nil {
				return exitError(2, "lower %s: %v", input, err)
			}
			defer f.Close()

			out, err := f.Encode()
			if err != nil {
				return exitError(1, "encode: %v", err)
			}
			if err := ioutil.WriteFile(output, out, 0644); err != nil {
				return exitError(2, "write %s: %v", output, err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&exact, "exact", false, "require byte-exact reconstruction")
	cmd.Flags().BoolVar(&strict, "strict", false, "escalate warnings to hard errors")
	return cmd
}
