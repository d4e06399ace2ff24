// Package service hosts the MCP server that exposes the study progress
// tools over stdio or streamable HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	mcpdomain "github.com/louisbranch/studyhall/internal/mcp/domain"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "StudyHall MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"

	// httpShutdownTimeout bounds graceful HTTP shutdown.
	httpShutdownTimeout = 5 * time.Second
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	// HTTPAddr is the listen address for the HTTP transport. Defaults to
	// localhost:8081 so the server is never exposed beyond the local host
	// unless explicitly configured.
	HTTPAddr string
}

// Server hosts the MCP server over a study progress service.
type Server struct {
	mcpServer *mcp.Server
}

// New creates an MCP server with every study tool registered against the
// given progress service.
func New(svc mcpdomain.ProgressService) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("progress service is required")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(mcpServer, mcpdomain.AnswerQuestionTool(), mcpdomain.AnswerQuestionHandler(svc))
	mcp.AddTool(mcpServer, mcpdomain.SessionStartTool(), mcpdomain.SessionStartHandler(svc))
	mcp.AddTool(mcpServer, mcpdomain.SessionEndTool(), mcpdomain.SessionEndHandler(svc))
	mcp.AddTool(mcpServer, mcpdomain.SettingsUpdateTool(), mcpdomain.SettingsUpdateHandler(svc))
	mcp.AddTool(mcpServer, mcpdomain.UserRenameTool(), mcpdomain.UserRenameHandler(svc))
	mcp.AddTool(mcpServer, mcpdomain.BadgeAwardTool(), mcpdomain.BadgeAwardHandler(svc))
	mcp.AddTool(mcpServer, mcpdomain.ProgressGetTool(), mcpdomain.ProgressGetHandler(svc))
	mcp.AddTool(mcpServer, mcpdomain.ProgressResetTool(), mcpdomain.ProgressResetHandler(svc))
	mcp.AddTool(mcpServer, mcpdomain.InsightsGetTool(), mcpdomain.InsightsGetHandler(svc))

	return &Server{mcpServer: mcpServer}, nil
}

// Run serves MCP on the configured transport and blocks until the context
// is cancelled or the transport fails.
func Run(ctx context.Context, cfg Config, svc mcpdomain.ProgressService) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	server, err := New(svc)
	if err != nil {
		return err
	}

	switch cfg.Transport {
	case TransportStdio:
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return server.serveHTTP(ctx, cfg.HTTPAddr)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// serveHTTP serves the streamable HTTP transport until the context is
// cancelled, then shuts the HTTP server down gracefully.
func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if addr == "" {
		addr = "localhost:8081"
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)

	httpServer := &http.Server{Addr: addr, Handler: handler}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("mcp http listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown MCP HTTP server: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve MCP HTTP: %w", err)
		}
		return nil
	}
}
