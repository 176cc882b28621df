// Copyright © 2018 The ELPS authors

package repl

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/parser"
)

// Version is printed in the REPL banner.
var Version = "0.0.0.0.1"

type config struct {
	stdin       io.ReadCloser
	stdout      io.Writer
	stderr      io.Writer
	historyFile *string
	envConfig   []lisp.Config
}

func newConfig(opts ...Option) *config {
	config := &config{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStdout allows overriding where evaluated results are printed.
func WithStdout(stdout io.Writer) Option {
	return func(c *config) {
		c.stdout = stdout
	}
}

// WithStderr allows overriding the diagnostic output of the REPL.
func WithStderr(stderr io.Writer) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithHistoryFile sets the file used to persist line history.  An empty
// path disables history.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.historyFile = &path
	}
}

// WithConfig adds configuration for the environment created by RunRepl.
func WithConfig(cfgs ...lisp.Config) Option {
	return func(c *config) {
		c.envConfig = append(c.envConfig, cfgs...)
	}
}

// RunRepl runs a simple repl in a vanilla lispy environment.
func RunRepl(prompt string, opts ...Option) {
	env := lisp.NewEnv()

	envOpts := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
	}

	cfg := newConfig(opts...)
	if cfg.stderr != nil {
		envOpts = append(envOpts, lisp.WithStderr(cfg.stderr))
	}
	envOpts = append(envOpts, cfg.envConfig...)

	rc := lisp.InitializeEnv(env, envOpts...)
	if lisp.GoError(rc) != nil {
		errlnf("Language initialization failure: %v", rc)
		os.Exit(1)
	}

	stdout := cfg.stdoutWriter()
	fmt.Fprintf(stdout, "Lispy version %s\n", Version) //nolint:errcheck // best-effort REPL output
	fmt.Fprintln(stdout, "Press Ctrl+c to exit")      //nolint:errcheck // best-effort REPL output
	fmt.Fprintln(stdout)                              //nolint:errcheck // best-effort REPL output

	RunEnv(env, prompt, opts...)
}

func (cfg *config) stdoutWriter() io.Writer {
	if cfg.stdout != nil {
		return cfg.stdout
	}
	return os.Stdout
}

// RunEnv runs a simple repl with env.  Each line is read, evaluated and its
// result printed.  Interrupting an empty line or reaching the end of input
// ends the loop.
func RunEnv(env *lisp.LEnv, prompt string, opts ...Option) {
	cfg := newConfig(opts...)
	if cfg.stderr != nil {
		env.Runtime.Stderr = cfg.stderr
	}
	stdout := cfg.stdoutWriter()

	histFile := historyPath()
	if cfg.historyFile != nil {
		histFile = *cfg.historyFile
	}
	ensureHistoryFilePermissions(histFile)

	rlCfg := &readline.Config{
		Stdout:            stdout,
		Stderr:            env.Runtime.Stderr,
		Prompt:            prompt,
		HistoryFile:       histFile,
		HistorySearchFold: true,
		AutoComplete:      &builtinCompleter{},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		panic(err)
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	for {
		line, err := rl.ReadSlice()
		line = bytes.TrimSpace(line)
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return
			}
			continue
		}
		if err != nil {
			return
		}
		if len(line) == 0 {
			continue
		}
		v, err := env.Read("stdin", bytes.NewReader(line))
		if err != nil {
			fmt.Fprintln(env.Runtime.Stderr, err) //nolint:errcheck // best-effort error display
			continue
		}
		r := env.Eval(v)
		fmt.Fprintln(stdout, r) //nolint:errcheck // best-effort REPL output
		r.Release()
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lispy_history")
}

// ensureHistoryFilePermissions creates the history file if necessary and
// restricts it to the current user.  Failures leave history to readline.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0600) //nolint:gosec // path is user configuration
	if err != nil {
		return
	}
	f.Close()            //nolint:errcheck,gosec // nothing was written
	os.Chmod(path, 0600) //nolint:errcheck,gosec // best-effort
}

func errlnf(format string, v ...interface{}) {
	if strings.HasSuffix(format, "\n") {
		errf(format, v...)
		return
	}
	errf(format+"\n", v...)
}

func errf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format, v...)
}
