package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ganzhi/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// instructions tells connected clients how the tools fit together.
const instructions = `ganzhi computes the four pillars (年柱 月柱 日柱 时柱) of a birth date and
retrieves reference texts for them.

Call compute_pillars with a solar or lunar date, a time and optionally a
longitude; the hour pillar uses longitude-corrected local time. Call
compose_knowledge with the same birth data for the ranked reference texts,
or search_knowledge for a free-text query. Documents are listed under
ganzhi://corpus and readable at ganzhi://documents/{id}.`

// shutdownTimeout bounds how long RunHTTP waits for open requests.
const shutdownTimeout = 5 * time.Second

var log = logger.Component("mcp")

// Server exposes the pillar and knowledge services over MCP.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a server with the tools and resources the ports support.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "ganzhi",
		Title:   "Ganzhi four pillars",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, &mcp.ServerOptions{Instructions: instructions}),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Connect serves a single session over transport without blocking.
func (s *Server) Connect(ctx context.Context, transport mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, transport, nil)
}

// Run serves over stdio until the context is cancelled or the client leaves.
func (s *Server) Run(ctx context.Context) error {
	log.Info("Serving over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// RunHTTP serves on addr until the context is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown: %v", err)
		}
	}()

	log.Info("Serving over HTTP on %s", addr)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
