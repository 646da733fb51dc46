package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/notebook/internal/catalog"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the notes catalog and tables of
// contents to agents.
type Server struct {
	src  catalog.Source
	opts catalog.Options
	mcp  *server.MCPServer
}

// NewServer creates an MCP server reading notes from src. The catalog is
// rebuilt on every call so edits show up without a restart.
func NewServer(src catalog.Source, opts catalog.Options) *Server {
	s := &Server{src: src, opts: opts}

	s.mcp = server.NewMCPServer(
		"notebook",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listNotesTool, s.handleListNotes)
	s.mcp.AddTool(getNoteTool, s.handleGetNote)
	s.mcp.AddTool(getTOCTool, s.handleGetTOC)
	s.mcp.AddTool(getNeighborsTool, s.handleGetNeighbors)
	s.mcp.AddTool(resolveAnchorTool, s.handleResolveAnchor)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
