// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

// Package presenter centralizes CLI output so commands never write to
// os.Stdout directly and tests can capture everything through cobra.
package presenter

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Print writes to the command's stdout.
func Print(cmd *cobra.Command, args ...any) {
	fmt.Fprint(cmd.OutOrStdout(), args...)
}

// Println writes a line to the command's stdout.
func Println(cmd *cobra.Command, args ...any) {
	fmt.Fprintln(cmd.OutOrStdout(), args...)
}

// Printf writes formatted output to the command's stdout.
func Printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

// Error writes a red error line to the command's stderr.
func Error(cmd *cobra.Command, args ...any) {
	fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("Error: %s", fmt.Sprint(args...)))
}
