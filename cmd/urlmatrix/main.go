// main.go: urlmatrix command line entry point.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/agilira/urlmatrix/internal/logging"
)

const version = "1.0.0"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "urlmatrix",
		Short: "Obfuscate URLs and configuration files for embedding in client code",
		Long: `urlmatrix turns a URL into an encrypted, fragmented matrix with decoys
and scrambled index tables, encrypts flat configuration files, and patches
byte-array URL literals into host source files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("log-level", "", "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(
		newEncodeCmd(),
		newConfigCmd(),
		newPatchCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "urlmatrix %s\n", version)
		},
	}
}

// commandLogger builds the logger for a subcommand, honouring --log-level
// over fallback.
func commandLogger(cmd *cobra.Command, name, fallback string) hclog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	if level == "" {
		level = fallback
	}
	return logging.NewLogger(name, level, cmd.ErrOrStderr())
}

var success = color.New(color.FgGreen)

// reportf prints a status line on the command's error stream, so it never
// mixes with artifacts written to stdout.
func reportf(cmd *cobra.Command, format string, args ...any) {
	_, _ = success.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}

// writeOutput writes data to path, or to the command output when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// readInput reads path, or the command input when path is empty or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path) // #nosec G304 -- path is supplied by the operator
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
