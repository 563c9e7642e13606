// Package server assembles the MCP server and its transports: stdio for the
// usual host-spawned setup, plus an HTTP mode with request logging for
// debugging and shared deployments.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/haddadrm/chrome-devtools-mcp/internal/tools"
)

const serverName = "chrome-devtools-mcp"

// New builds the MCP server with every tool registered.
func New(version string, deps *tools.Deps) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer(serverName, version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)
	tools.Register(s, deps)
	return s
}

// ServeStdio blocks serving the stdio transport. Stdout carries the protocol,
// so nothing else in the process may write there.
func ServeStdio(s *mcpserver.MCPServer) error {
	return mcpserver.ServeStdio(s)
}

// ServeHTTP blocks serving the streamable HTTP transport on addr, mounted
// under /mcp behind chi with per-request logging.
func ServeHTTP(s *mcpserver.MCPServer, addr string, log *zap.Logger) error {
	httpLogger := httplog.NewLogger(serverName, httplog.Options{
		JSON:    true,
		Concise: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(httpLogger))
	r.Use(middleware.Recoverer)
	r.Handle("/mcp", mcpserver.NewStreamableHTTPServer(s))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	log.Info("serving MCP over HTTP", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}
