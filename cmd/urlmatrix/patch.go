// patch.go: The patch subcommand.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/agilira/urlmatrix/patcher"
)

func newPatchCmd() *cobra.Command {
	var (
		url    string
		file   string
		output string
	)
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Replace the URL fragment matrix of a source file with a byte-array literal",
		Example: `  urlmatrix patch --url https://example.com/api/config --file QuantumShield.java
  urlmatrix patch --url https://example.com/api/config --file Shield.java -o Patched.java`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := commandLogger(cmd, "urlmatrix.patch", "")
			if output == "" {
				if err := patcher.PatchFile(file, url); err != nil {
					return err
				}
				logger.Info("source patched in place", "file", file)
				reportf(cmd, "Patched %s", file)
				return nil
			}

			source, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			patched, err := patcher.Patch(string(source), url)
			if err != nil {
				return err
			}
			logger.Info("source patched", "file", file, "output", output)
			return writeOutput(cmd, output, []byte(patched))
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "URL to embed")
	cmd.Flags().StringVar(&file, "file", "", "Source file containing the marker region")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the patched source here instead of in place")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
