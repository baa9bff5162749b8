package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lobsternotes/lnrouter"
	"github.com/lobsternotes/lnrouter/internal/api"
	"github.com/lobsternotes/lnrouter/internal/devserver"
	"github.com/lobsternotes/lnrouter/internal/tui"
	"github.com/lobsternotes/lnrouter/rgen"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func tuiCmd(g *globals) *cobra.Command {
	var (
		user      string
		userID    int64
		startPath string
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal front end",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load(cmd)
			if err != nil {
				return err
			}
			// the terminal belongs to the UI, so without a log file logs are dropped
			logger, closeLog, err := g.logger(cfg, io.Discard)
			if err != nil {
				return err
			}
			defer closeLog()

			if cmd.Flags().Changed("start") {
				cfg.StartPath = startPath
			}

			client := api.NewClient(cfg.APIBaseURL,
				api.WithTimeout(cfg.RequestTimeout),
				api.WithLogger(logger))

			ctx, cancel := signalContext()
			defer cancel()

			logger.Info("starting terminal ui", "api", client.BaseURL(), "start", cfg.StartPath)
			return tui.Run(ctx, cfg.StartPath, client, tui.Options{
				User:    user,
				UserID:  userID,
				Timeout: cfg.RequestTimeout,
				Logger:  logger,
			})
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "Signed-in user name")
	cmd.Flags().Int64Var(&userID, "user-id", 0, "Backend id of --user; a professor's dashboard lists the courses they teach")
	cmd.Flags().StringVar(&startPath, "start", "/", "Location to open first, e.g. /note/42")

	return cmd
}

func serveCmd(g *globals) *cobra.Command {
	var (
		addr      string
		staticDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser build for development",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load(cmd)
			if err != nil {
				return err
			}
			logger, closeLog, err := g.logger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			if cmd.Flags().Changed("addr") {
				cfg.ServeAddr = addr
			}
			if cmd.Flags().Changed("static") {
				cfg.StaticDir = staticDir
			}

			srv := devserver.NewServer(cfg.ServeAddr, cfg.StaticDir, lnrouter.DefaultRoutes(),
				devserver.ClientConfig{APIBaseURL: cfg.APIBaseURL, UseFragment: cfg.UseFragment},
				logger)
			if err := srv.Start(); err != nil {
				return fmt.Errorf("start dev server: %w", err)
			}

			ctx, cancel := signalContext()
			defer cancel()
			<-ctx.Done()

			logger.Info("shutting down dev server")
			return srv.Stop()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&staticDir, "static", "", "Directory of built assets (default from config)")

	return cmd
}

func routeCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "route [path...]",
		Short: "Show the view a location resolves to",
		Long: `Show the view each location resolves to and the canonical path
navigating to that view produces.  With --all, print the route table.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rl := lnrouter.DefaultRoutes()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer tw.Flush()

			if all || len(args) == 0 {
				fmt.Fprintln(tw, "VIEW\tPATTERN")
				for _, e := range rl.Entries() {
					fmt.Fprintf(tw, "%s\t%s\n", e.Name, e.Pattern)
				}
				return nil
			}

			fmt.Fprintln(tw, "LOCATION\tROUTE\tCANONICAL")
			for _, p := range args {
				rt := rl.Parse(p)
				canon, err := rl.PathFor(rt)
				if err != nil {
					return fmt.Errorf("route %s: %w", rt, err)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p, rt, canon)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Print the whole route table")

	return cmd
}

func genViewsCmd() *cobra.Command {
	var (
		packageName string
		manifest    string
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "gen-views [dir...]",
		Short: "Generate the view map for directories of .vugu components",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."} // default to current dir
			}
			if packageName != "" && len(args) > 1 {
				return fmt.Errorf("--package is only valid with a single directory")
			}

			for _, arg := range args {
				dir, err := filepath.Abs(arg)
				if err != nil {
					return fmt.Errorf("converting %q to absolute path: %w", arg, err)
				}

				out, err := rgen.New().
					SetDir(dir).
					SetPackageName(packageName).
					SetManifest(manifest).
					Generate()
				if err != nil {
					return fmt.Errorf("generating views for %s: %w", arg, err)
				}

				if !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&packageName, "package", "p", "", "The full package name to use; detected from go.mod when unset")
	cmd.Flags().StringVarP(&manifest, "manifest", "m", "", "YAML file overriding the view each file maps to")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print information upon error")

	return cmd
}
