// encode.go: The encode subcommand.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agilira/urlmatrix"
	"github.com/agilira/urlmatrix/internal/settings"
)

func newEncodeCmd() *cobra.Command {
	var (
		configPath string
		dimension  int
		fragments  int
		noDecoys   bool
		output     string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "encode <url>",
		Short: "Encode a URL into an obfuscated matrix",
		Example: `  urlmatrix encode https://example.com/api/config
  urlmatrix encode -m 4 -f 6 -o UrlMatrix.java https://example.com/api/config
  urlmatrix encode --format json example.com/path?x=1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("matrix-size") {
				s.Dimension = dimension
			}
			if flags.Changed("fragments") {
				s.Fragments = fragments
			}
			if flags.Changed("no-decoys") {
				s.NoDecoys = noDecoys
			}
			if flags.Changed("output") {
				s.Output = output
			}
			if flags.Changed("format") {
				s.Format = format
			}
			if err := s.Validate(); err != nil {
				return err
			}

			logger := commandLogger(cmd, "urlmatrix.encode", s.LogLevel)
			artifact, err := urlmatrix.Build(args[0], s.MatrixConfig(), urlmatrix.WithLogger(logger))
			if err != nil {
				return err
			}

			var data []byte
			if strings.EqualFold(s.Format, settings.FormatJSON) {
				data, err = json.MarshalIndent(artifact, "", "  ")
				if err != nil {
					return err
				}
				data = append(data, '\n')
			} else {
				data = []byte(artifact.Render() + "\n")
			}

			if err := writeOutput(cmd, s.Output, data); err != nil {
				return err
			}
			if s.Output != "" {
				reportf(cmd, "Wrote %dx%d matrix (%d fragments) to %s",
					artifact.Dimension, artifact.Dimension, artifact.FragmentCount, s.Output)
			}
			logger.Info("url encoded", "dimension", artifact.Dimension, "fragments", artifact.FragmentCount,
				"checksum", urlmatrix.URLChecksum(urlmatrix.NormalizeURL(args[0])))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "Path to a YAML settings file")
	flags.IntVarP(&dimension, "matrix-size", "m", urlmatrix.DefaultDimension, "Matrix dimension n (n x n grid)")
	flags.IntVarP(&fragments, "fragments", "f", urlmatrix.DefaultFragmentCount, "Number of URL fragments")
	flags.BoolVar(&noDecoys, "no-decoys", false, "Leave unused cells empty instead of filling them with decoys")
	flags.StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	flags.StringVar(&format, "format", settings.FormatJava, "Output format (java, json)")
	return cmd
}
