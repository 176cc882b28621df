// Copyright © 2018 The ELPS authors

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/luthersystems/lispy/lisp"
	"github.com/spf13/cobra"
)

// RunCommand returns a command which evaluates lispy expressions given on
// the command line, read from files, or read from stdin.
func RunCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts...)
	var (
		runExpressions []string
		runExcludes    []string
		runFailOnError bool
	)
	cmd := &cobra.Command{
		Use:   "run [flags] [files...]",
		Short: "Run lisp code",
		Long: `Run lisp code supplied via the command line or files.

Each -e expression and each non-blank line of a file is a separate program.
Results are printed to stdout in order.  Without arguments lines are read
from stdin.  An argument ending in "/..." runs every .lispy file under the
directory.

Examples:
  lispy run -e '(+ 1 2)' -e 'head {1 2 3}'
  lispy run scripts/...  --exclude 'scratch_*'`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandArgs(args)
			if err != nil {
				return err
			}
			files = filterExcludes(files, runExcludes)

			var sources []source
			for _, expr := range runExpressions {
				sources = append(sources, source{name: "-e", r: strings.NewReader(expr)})
			}
			for _, path := range files {
				f, err := os.Open(path) //nolint:gosec // user supplied source file
				if err != nil {
					return err
				}
				defer f.Close() //nolint:errcheck // read only
				sources = append(sources, source{name: path, r: f})
			}
			if len(runExpressions) == 0 && len(args) == 0 {
				sources = append(sources, source{name: "stdin", r: cmd.InOrStdin()})
			}

			env, done, err := cfg.newEnv(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			failed, err := runSources(env, cmd.OutOrStdout(), cmd.ErrOrStderr(), sources)
			if derr := done(); err == nil {
				err = derr
			}
			if err != nil {
				return err
			}
			if runFailOnError && failed > 0 {
				return fmt.Errorf("%d expression(s) failed", failed)
			}
			return nil
		},
	}

	// Here flags for the run command are defined
	cmd.Flags().StringArrayVarP(&runExpressions, "expression", "e", nil,
		"Evaluate a lisp expression (may be repeated)")
	cmd.Flags().StringSliceVar(&runExcludes, "exclude", nil,
		"Glob patterns for files or directories to skip")
	cmd.Flags().BoolVar(&runFailOnError, "fail-on-error", true,
		"Exit with a non-zero status if any expression evaluates to an error")
	return cmd
}

type source struct {
	name string
	r    io.Reader
}

// runSources evaluates every non-blank line of sources in env.  Results are
// written to w and syntax errors to errw.  The number of lines which failed
// to parse or evaluated to an error is returned.
func runSources(env *lisp.LEnv, w io.Writer, errw io.Writer, sources []source) (int, error) {
	var failed int
	for _, src := range sources {
		scanner := bufio.NewScanner(src.r)
		for lineno := 1; scanner.Scan(); lineno++ {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			v, err := env.Read(fmt.Sprintf("%s:%d", src.name, lineno), strings.NewReader(line))
			if err != nil {
				fmt.Fprintln(errw, err) //nolint:errcheck // best-effort error display
				failed++
				continue
			}
			r := env.Eval(v)
			if r.Type == lisp.LError {
				failed++
			}
			_, err = fmt.Fprintln(w, r)
			r.Release()
			if err != nil {
				return failed, err
			}
		}
		if err := scanner.Err(); err != nil {
			return failed, fmt.Errorf("%s: %w", src.name, err)
		}
	}
	return failed, nil
}
