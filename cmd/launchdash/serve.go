package main

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/launchdash/internal/config"
	"github.com/example/launchdash/internal/dashboard"
	"github.com/example/launchdash/internal/dataset"
)

func newServeCommand(opts *config.Options, globals *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, globals)
		},
	}
}

// runServe loads the dataset before opening the listener so load failures
// stop the process without serving anything.
func runServe(cmd *cobra.Command, opts *config.Options, globals *globalOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	logger, err := globals.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	ds, err := dataset.Load(ctx, opts.DataPath)
	if err != nil {
		return err
	}
	logger.Info("dataset loaded", "path", opts.DataPath, "records", ds.Len(), "sites", len(ds.Sites()))

	errOut := cmd.ErrOrStderr()
	server := dashboard.New(opts.ListenAddr, ds, opts.Settings(ds), logger.WithName("dashboard"),
		dashboard.WithReadyHook(func(addr string) {
			fmt.Fprintf(errOut, "Serving %s at %s (Ctrl+C to stop)\n", opts.Title, formatURL(addr))
		}),
	)
	return server.Run(ctx)
}

// formatURL turns a listen address into a browsable URL.
func formatURL(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ""
	}
	host := addr
	if strings.HasPrefix(host, ":") {
		host = "127.0.0.1" + host
	}
	if h, p, err := net.SplitHostPort(host); err == nil {
		if strings.TrimSpace(h) == "" || h == "0.0.0.0" || h == "::" {
			host = "127.0.0.1:" + p
		}
	}
	u := url.URL{Scheme: "http", Host: host, Path: "/"}
	return u.String()
}
