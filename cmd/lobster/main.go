// Package main provides the lobster binary: the terminal front end, a
// development server for the browser build, and routing utilities.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/lobsternotes/lnrouter/internal/config"
	"github.com/lobsternotes/lnrouter/internal/logging"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "lobster"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globals are the persistent flags every subcommand sees.
type globals struct {
	configPath string
	logLevel   string
}

// load reads the configuration and applies flag overrides.
func (g *globals) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = g.logLevel
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return cfg, nil
}

// logger builds the command logger.  w is used when no log-file is set.
func (g *globals) logger(cfg config.Config, w io.Writer) (*slog.Logger, func() error, error) {
	l, closeFn, err := logging.New(cfg.LogLevel, cfg.LogFile, w)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(l)
	return l, closeFn, nil
}

func rootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Lobster Notes client tools",
		Long: `Lobster Notes saves notes and learning resources and lets students
browse what others shared.

This binary provides:
- a terminal front end routed the same way as the browser build
- a development server for the browser build
- route table and view generation utilities`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		tuiCmd(g),
		serveCmd(g),
		routeCmd(),
		genViewsCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}
