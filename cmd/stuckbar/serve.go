package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/benaskins/stuckbar/internal/config"
	"github.com/benaskins/stuckbar/internal/explorer"
	"github.com/benaskins/stuckbar/internal/mcpserver"
	"github.com/spf13/cobra"
)

type serveOptions struct {
	stdio bool
	http  bool
	host  string
	port  int
}

func newServeCmd(a *app) *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as an MCP server",
		Long: `Expose kill_explorer, start_explorer and restart_explorer as Model
Context Protocol tools. Speaks JSON-RPC over stdin/stdout by default, or
server-sent events over HTTP with --http.`,
		Args:        cobra.NoArgs,
		Annotations: platformOnly(),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.http {
				if cmd.Flags().Changed("port") && (opts.port < 1 || opts.port > 65535) {
					return fmt.Errorf("--port %d out of range 1-65535", opts.port)
				}
				return nil
			}
			if cmd.Flags().Changed("host") || cmd.Flags().Changed("port") {
				return errors.New("--host and --port require --http")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.stdio, "stdio", false, "Serve over stdin/stdout (default)")
	cmd.Flags().BoolVar(&opts.http, "http", false, "Serve over HTTP with server-sent events")
	cmd.Flags().StringVar(&opts.host, "host", config.DefaultHost, "Bind host for --http")
	cmd.Flags().IntVar(&opts.port, "port", config.DefaultPort, "Bind port for --http")
	cmd.MarkFlagsMutuallyExclusive("stdio", "http")

	return cmd
}

func (a *app) serve(cmd *cobra.Command, opts serveOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tool results carry the outcome; console narration would corrupt stdio.
	m := explorer.NewManager(a.newRunner()).
		WithRestartDelay(a.cfg.RestartDelay).
		WithOutput(io.Discard, io.Discard)
	srv := mcpserver.New(m, mcpserver.WithPlatformGate(a.checkPlatform))

	if !opts.http {
		slog.Debug("starting MCP server", "transport", "stdio")
		if err := srv.ServeStdio(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("MCP stdio server: %w", err)
		}
		return nil
	}

	httpCfg := mcpserver.DefaultHTTPConfig()
	httpCfg.Host = a.cfg.Serve.Host
	httpCfg.Port = a.cfg.Serve.Port
	if cmd.Flags().Changed("host") {
		httpCfg.Host = opts.host
	}
	if cmd.Flags().Changed("port") {
		httpCfg.Port = opts.port
	}

	errOut := cmd.ErrOrStderr()
	fmt.Fprintf(errOut, "Starting stuckbar MCP server on http://%s%s\n", httpCfg.Addr(), httpCfg.SSEPath)
	fmt.Fprintln(errOut, "Press Ctrl+C to stop the server")

	if err := srv.ServeHTTP(ctx, httpCfg); err != nil {
		return fmt.Errorf("MCP HTTP server: %w", err)
	}
	return nil
}
