// Copyright © 2018 The ELPS authors

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lispy",
	Short: "Lispy, a Q-expression interpreter",
	Long: `Lispy is a small Lisp with integers, symbols, S-expressions and
Q-expressions.  S-expressions are evaluated, Q-expressions are quoted data
that builtins such as head, tail and join manipulate.

Getting started:
  lispy repl                        Start an interactive REPL
  lispy run -e '(+ 1 2)'            Evaluate an expression
  lispy run file.lispy              Evaluate each line of a file
  lispy doc                         List the builtins
  lispy doc join                    Show documentation for a builtin

Configuration is read from $HOME/.lispy.yaml (or --config) and from
LISPY_* environment variables, for example LISPY_MAX_DEPTH=1000.`,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.lispy.yaml)")
	rootCmd.PersistentFlags().Int(keyMaxDepth, 0,
		"Maximum S-expression nesting during evaluation (0 is unlimited)")
	rootCmd.PersistentFlags().Bool(keyTrace, false,
		"Trace builtin calls with OpenTelemetry and print a summary to stderr")
	bindFlags(viper.GetViper(), rootCmd)

	rootCmd.AddCommand(
		ReplCommand(),
		RunCommand(),
		DocCommand(),
		VersionCommand(),
	)
}

// bindFlags binds the persistent configuration flags of cmd to v.
func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	for _, key := range []string{keyMaxDepth, keyTrace} {
		err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(key))
		if err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in home directory with name ".lispy" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".lispy")
	}

	viper.SetEnvPrefix("lispy")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
