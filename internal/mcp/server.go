// ABOUTME: MCP server initialization and configuration
// ABOUTME: Sets up server with chart tools and profile resources for AI agents

package mcp

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harper/astro/internal/ephemeris"
	"github.com/harper/astro/internal/logging"
	"github.com/harper/astro/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with profile storage and an ephemeris engine.
type Server struct {
	mcp    *mcp.Server
	repo   storage.Repository
	engine ephemeris.Engine
	logger *log.Logger
}

// NewServer creates MCP server with all capabilities.
func NewServer(repo storage.Repository, engine ephemeris.Engine, logger *log.Logger) (*Server, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("ephemeris engine is required")
	}
	if logger == nil {
		logger = logging.Discard()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "astro",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:    mcpServer,
		repo:   repo,
		engine: engine,
		logger: logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("serving MCP over stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
