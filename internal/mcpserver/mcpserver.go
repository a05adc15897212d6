// Package mcpserver exposes the analysis pipeline as a Model Context
// Protocol server.
package mcpserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/panbanda/waypoint/internal/pipeline"
)

// Server wraps the MCP server and the session shared by every tool call.
type Server struct {
	server  *mcp.Server
	session *pipeline.Session
	schema  *envelopeSchema
	logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. Logs must not go to stdout, which
// carries the protocol.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates an MCP server backed by session. The session and its
// history live as long as the server.
func NewServer(version string, session *pipeline.Session, opts ...Option) (*Server, error) {
	if version == "" {
		version = "dev"
	}
	schema, err := compileEnvelopeSchema()
	if err != nil {
		return nil, err
	}

	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "waypoint",
			Version: version,
		}, nil),
		session: session,
		schema:  schema,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}

	s.registerTools()
	s.registerPrompts()
	s.registerResources()
	return s, nil
}

// Run serves over stdio until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze",
		Description: describeAnalyze(),
	}, s.handleAnalyze)
}
