// Copyright © 2021 The ELPS authors

package cmd

import (
	"fmt"

	"github.com/luthersystems/lispy/lisp/lisplib/libhelp"
	"github.com/spf13/cobra"
)

// DocCommand returns a command which shows builtin documentation.
func DocCommand() *cobra.Command {
	var docMissing bool
	cmd := &cobra.Command{
		Use:   "doc [flags] [BUILTIN]",
		Short: "Show lispy documentation for builtins",
		Long: `Show built-in documentation for lispy builtins.

Without arguments every builtin is listed with its aliases and a summary.
Given a builtin name or alias its usage and full documentation are shown.

Examples:
  lispy doc                 List all builtins
  lispy doc join            Show docs for join
  lispy doc mult            Show docs for * through an alias`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if docMissing {
				missing := libhelp.CheckMissing()
				for _, name := range missing {
					fmt.Fprintln(out, name) //nolint:errcheck // best-effort listing
				}
				if len(missing) > 0 {
					return fmt.Errorf("%d builtins missing documentation", len(missing))
				}
				return nil
			}
			if len(args) == 0 {
				return libhelp.RenderBuiltinList(out)
			}
			return libhelp.RenderBuiltin(out, args[0])
		},
	}

	// Here flags for the doc command are defined
	cmd.Flags().BoolVar(&docMissing, "missing", false,
		"List builtins without documentation and fail if there are any.")
	return cmd
}
