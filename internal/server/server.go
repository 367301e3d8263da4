// Package server wires the expense ledger onto the Model Context
// Protocol: five tools over the store, four canned prompts, and three
// read-only resources. The MCP host does the transport and framing;
// everything here is the mapping of named operations onto storage,
// taxonomy, and report calls.
package server

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/M-Smaran/test-mcp-server/internal/config"
	"github.com/M-Smaran/test-mcp-server/internal/log"
	"github.com/M-Smaran/test-mcp-server/internal/storage"
)

const (
	serverName    = "ExpenseTracker"
	serverVersion = "1.0.0"
)

type Server struct {
	cfg    *config.Config
	store  *storage.Store
	logger *log.Logger
	mcp    *mcpserver.MCPServer

	// now is the clock used for prompt defaulting; tests pin it.
	now func() time.Time
}

func New(cfg *config.Config, store *storage.Store, logger *log.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		store:  store,
		logger: logger.WithComponent(log.ComponentServer),
		now:    time.Now,
	}

	s.mcp = mcpserver.NewMCPServer(serverName, serverVersion,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithPromptCapabilities(false),
		mcpserver.WithResourceCapabilities(false, false),
		mcpserver.WithRecovery(),
		mcpserver.WithToolHandlerMiddleware(s.loggingMiddleware),
	)

	s.registerTools()
	s.registerPrompts()
	s.registerResources()

	return s
}

// loggingMiddleware logs every tool call with its duration and outcome.
func (s *Server) loggingMiddleware(next mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		ctx = log.IntoContext(ctx, s.logger)
		res, err := next(ctx, req)

		success := err == nil && (res == nil || !res.IsError)
		s.logger.InfoContext(ctx, "Tool call completed",
			log.FieldTool, req.Params.Name,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldSuccess, success)

		return res, err
	}
}

// ServeStdio blocks serving the MCP protocol over stdin/stdout.
func (s *Server) ServeStdio() error {
	return mcpserver.ServeStdio(s.mcp)
}

// ServeHTTP serves the streamable HTTP transport on addr until ctx is
// canceled, then shuts the listener down.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down MCP server", log.FieldOperation, log.OpShutdown)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
