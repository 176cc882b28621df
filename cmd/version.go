// Copyright © 2018 The ELPS authors

package cmd

import (
	"fmt"

	"github.com/luthersystems/lispy/repl"
	"github.com/spf13/cobra"
)

// VersionCommand returns a command which prints the interpreter version.
func VersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lispy version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "lispy version %s\n", repl.Version)
			return err
		},
	}
}
