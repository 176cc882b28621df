// Copyright © 2018 The ELPS authors

package cmd

import (
	"context"

	"github.com/luthersystems/lispy/repl"
	"github.com/spf13/cobra"
)

// ReplCommand returns a command which starts an interactive REPL.
func ReplCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts...)
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive lispy REPL",
		Long: `Start an interactive read-eval-print loop.

Each line is evaluated as a program and its result printed.  Line editing,
builtin name completion and command history are supported via readline.
Use Ctrl-D or Ctrl-C on an empty line to exit.

Example REPL session:
  lispy> (+ 1 2)
  3
  lispy> head {1 2 3}
  {1}
  lispy> (eval (join {*} {6 7}))
  42
  lispy> (/ 1 0)
  Error: Division by zero

The prompt and history file may be set with the "prompt" and
"history-file" configuration keys.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, done := cfg.lispConfig(context.Background(), cmd.ErrOrStderr())
			replOpts := []repl.Option{
				repl.WithStdout(cmd.OutOrStdout()),
				repl.WithStderr(cmd.ErrOrStderr()),
			}
			if path := cfg.settings().GetString(keyHistoryFile); path != "" {
				replOpts = append(replOpts, repl.WithHistoryFile(path))
			}
			if cfg.env != nil {
				repl.RunEnv(cfg.env, cfg.prompt(), replOpts...)
			} else {
				replOpts = append(replOpts, repl.WithConfig(config...))
				repl.RunRepl(cfg.prompt(), replOpts...)
			}
			return done()
		},
	}
}
