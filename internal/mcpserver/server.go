// Package mcpserver exposes the explorer operations as Model Context
// Protocol tools over stdio or HTTP (SSE).
package mcpserver

import (
	"context"
	"log/slog"

	"github.com/benaskins/stuckbar/internal/explorer"
	"github.com/benaskins/stuckbar/internal/platform"
	"github.com/benaskins/stuckbar/internal/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Name is the server name advertised to MCP clients.
const Name = "stuckbar"

// Tool names.
const (
	ToolKill    = "kill_explorer"
	ToolStart   = "start_explorer"
	ToolRestart = "restart_explorer"
)

const instructions = `Stuckbar MCP Server - A tool for managing Windows Explorer.

Available tools:
- kill_explorer: Terminate explorer.exe
- start_explorer: Start explorer.exe
- restart_explorer: Restart explorer.exe (recommended for stuck taskbar)

Use 'restart_explorer' to fix a stuck or unresponsive Windows taskbar.`

// Server wraps one shared explorer.Manager. Every tool call takes the
// server-wide lock for the whole operation, so a restart's kill, delay
// and start never interleave with another call.
type Server struct {
	lock    chan struct{}
	manager *explorer.Manager
	gate    func() error
	mcp     *server.MCPServer
	logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithPlatformGate replaces platform.Check as the per-call platform gate.
func WithPlatformGate(gate func() error) Option {
	return func(s *Server) {
		s.gate = gate
	}
}

// New creates an MCP server backed by m.
func New(m *explorer.Manager, opts ...Option) *Server {
	s := &Server{
		lock:    make(chan struct{}, 1),
		manager: m,
		gate:    platform.Check,
		logger:  slog.With("component", "mcp"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = server.NewMCPServer(Name, version.Version,
		server.WithToolCapabilities(false),
		server.WithInstructions(instructions),
		server.WithRecovery(),
	)

	s.mcp.AddTool(mcp.NewTool(ToolKill,
		mcp.WithDescription("Terminate the Windows Explorer (explorer.exe) process. "+
			"This will cause the taskbar and desktop to temporarily disappear. "+
			"Use this when you need to forcefully stop explorer."),
	), s.handleKill)

	s.mcp.AddTool(mcp.NewTool(ToolStart,
		mcp.WithDescription("Start the Windows Explorer (explorer.exe) process. "+
			"This will restore the taskbar and desktop. "+
			"Use this after killing explorer or if explorer is not running."),
	), s.handleStart)

	s.mcp.AddTool(mcp.NewTool(ToolRestart,
		mcp.WithDescription("Restart Windows Explorer (explorer.exe) by killing and restarting it. "+
			"This is the recommended fix for a stuck or unresponsive Windows taskbar. "+
			"The operation includes a brief delay between kill and start."),
	), s.handleRestart)

	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) handleKill(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.call(ctx, ToolKill, (*explorer.Manager).KillSilent), nil
}

func (s *Server) handleStart(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.call(ctx, ToolStart, (*explorer.Manager).StartSilent), nil
}

func (s *Server) handleRestart(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.call(ctx, ToolRestart, (*explorer.Manager).RestartSilent), nil
}

// call gates, serializes and runs op, mapping its Result onto a tool result.
// Operational failures are tool errors, never protocol errors.
func (s *Server) call(ctx context.Context, tool string, op func(*explorer.Manager) explorer.Result) *mcp.CallToolResult {
	if err := s.gate(); err != nil {
		s.logger.Warn("tool refused", "tool", tool, "error", err)
		return mcp.NewToolResultError(err.Error())
	}

	// A caller may give up while queued; once the lock is held the
	// operation runs to completion regardless of ctx.
	select {
	case s.lock <- struct{}{}:
	case <-ctx.Done():
		s.logger.Info("tool call abandoned while queued", "tool", tool, "error", ctx.Err())
		return mcp.NewToolResultError("request cancelled before " + tool + " could run: " + ctx.Err().Error())
	}
	result := s.run(op)

	s.logger.Info("tool call finished", "tool", tool, "success", result.Success)
	if !result.Success {
		return mcp.NewToolResultError(result.Message)
	}
	return mcp.NewToolResultText(result.Message)
}

func (s *Server) run(op func(*explorer.Manager) explorer.Result) explorer.Result {
	defer func() { <-s.lock }()
	return op(s.manager)
}
