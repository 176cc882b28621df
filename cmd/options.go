// Copyright © 2024 The ELPS authors

package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/lisp/x/profiler"
	"github.com/luthersystems/lispy/parser"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Configuration keys.  Each may be set in the config file or through a
// LISPY_ prefixed environment variable.
const (
	keyMaxDepth    = "max-depth"
	keyTrace       = "trace"
	keyPrompt      = "prompt"
	keyHistoryFile = "history-file"
)

// Option configures an exported command factory (RunCommand, ReplCommand).
type Option func(*cmdConfig)

type cmdConfig struct {
	env       *lisp.LEnv
	envConfig []lisp.Config
	v         *viper.Viper
}

func newCmdConfig(opts ...Option) *cmdConfig {
	c := &cmdConfig{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithEnv injects a fully configured LEnv used to evaluate expressions in
// place of a fresh environment.
func WithEnv(env *lisp.LEnv) Option {
	return func(c *cmdConfig) { c.env = env }
}

// WithConfig adds configuration applied to environments created by a
// command.
func WithConfig(config ...lisp.Config) Option {
	return func(c *cmdConfig) { c.envConfig = append(c.envConfig, config...) }
}

// WithViper sets the source of configuration settings.  By default the
// global viper instance is used.
func WithViper(v *viper.Viper) Option {
	return func(c *cmdConfig) { c.v = v }
}

func (c *cmdConfig) settings() *viper.Viper {
	if c.v != nil {
		return c.v
	}
	return viper.GetViper()
}

func (c *cmdConfig) prompt() string {
	if p := c.settings().GetString(keyPrompt); p != "" {
		return p
	}
	return filepath.Base(os.Args[0]) + "> "
}

// lispConfig returns the environment configuration described by the
// command settings.  Evaluation is interrupted when ctx is done.  The returned function must be called once evaluation
// is finished.  When tracing, it writes a span summary to stderr.
func (c *cmdConfig) lispConfig(ctx context.Context, stderr io.Writer) ([]lisp.Config, func() error) {
	v := c.settings()
	config := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStderr(stderr),
		lisp.WithMaxDepth(v.GetInt(keyMaxDepth)),
		lisp.WithContext(ctx),
	}
	config = append(config, c.envConfig...)
	if !v.GetBool(keyTrace) {
		return config, func() error { return nil }
	}

	summary := newSpanSummary()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(summary),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	config = append(config, lisp.WithProfiler(profiler.NewOpenTelemetryAnnotator(ctx)))
	return config, func() error {
		err := tp.Shutdown(context.Background())
		if err != nil {
			return err
		}
		return summary.Render(stderr)
	}
}

// newEnv returns the environment commands evaluate expressions in.
func (c *cmdConfig) newEnv(ctx context.Context, stderr io.Writer) (*lisp.LEnv, func() error, error) {
	if c.env != nil {
		return c.env, func() error { return nil }, nil
	}
	config, done := c.lispConfig(ctx, stderr)
	env := lisp.NewEnv()
	rc := lisp.InitializeEnv(env, config...)
	if err := lisp.GoError(rc); err != nil {
		_ = done()
		return nil, nil, err
	}
	return env, done, nil
}
