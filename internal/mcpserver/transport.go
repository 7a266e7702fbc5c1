package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/server"
)

const shutdownTimeout = 5 * time.Second

// HTTPConfig configures the network transport.
type HTTPConfig struct {
	Host        string
	Port        int
	SSEPath     string
	MessagePath string
}

// DefaultHTTPConfig returns the defaults: 127.0.0.1:8080, /sse and /message.
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		Host:        "127.0.0.1",
		Port:        8080,
		SSEPath:     "/sse",
		MessagePath: "/message",
	}
}

// Addr returns host:port.
func (c HTTPConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c HTTPConfig) withDefaults() HTTPConfig {
	def := DefaultHTTPConfig()
	if c.Host == "" {
		c.Host = def.Host
	}
	if c.Port == 0 {
		c.Port = def.Port
	}
	if c.SSEPath == "" {
		c.SSEPath = def.SSEPath
	}
	if c.MessagePath == "" {
		c.MessagePath = def.MessagePath
	}
	return c
}

// ServeStdio speaks newline-delimited JSON-RPC over in and out until ctx
// is cancelled or in reaches EOF.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))

	s.logger.Info("serving MCP over stdio")
	err := stdio.Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// ServeHTTP listens on cfg.Addr() and serves the SSE transport until ctx
// is cancelled.
func (s *Server) ServeHTTP(ctx context.Context, cfg HTTPConfig) error {
	cfg = cfg.withDefaults()
	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Addr(), err)
	}
	return s.ServeListener(ctx, ln, cfg)
}

// ServeListener serves the SSE transport on an existing listener until ctx
// is cancelled, then shuts down gracefully.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener, cfg HTTPConfig) error {
	cfg = cfg.withDefaults()

	httpSrv := &http.Server{ReadHeaderTimeout: 10 * time.Second}
	sse := server.NewSSEServer(s.mcp,
		server.WithSSEEndpoint(cfg.SSEPath),
		server.WithMessageEndpoint(cfg.MessagePath),
		server.WithUseFullURLForMessageEndpoint(false),
		server.WithHTTPServer(httpSrv),
	)
	httpSrv.Handler = sse

	s.logger.Info("serving MCP over HTTP",
		"addr", ln.Addr().String(),
		"sse", cfg.SSEPath,
		"message", cfg.MessagePath)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving HTTP: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := sse.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving HTTP: %w", err)
	}

	s.logger.Info("MCP HTTP server stopped")
	return nil
}
