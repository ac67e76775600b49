// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the docs manifest to LLM agents via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/jera/internal/docservice"
)

// Server wraps the MCP server with Jera tools.
type Server struct {
	mcp *server.MCPServer
	svc *docservice.Service
}

// New creates a new MCP server with all Jera tools registered.
func New(svc *docservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Jera",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List HTML documents in manifest order: dated files newest "+
			"to oldest, then undated files alphabetically. Rebuild first if the docs "+
			"directory changed since the last build."),
	), s.listDocuments)

	s.mcp.AddTool(mcp.NewTool("rebuild_manifest",
		mcp.WithDescription("Rescan the docs directory and regenerate files.json from "+
			"scratch. Returns the build summary (counts, newest/oldest file, checksum)."),
	), s.rebuildManifest)

	s.mcp.AddTool(mcp.NewTool("build_history",
		mcp.WithDescription("Show recent manifest build runs from the journal, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of runs to return (default 10)")),
	), s.buildHistory)

	// Resource: the current manifest JSON.
	s.mcp.AddResource(
		mcp.NewResource("jera://manifest", "Docs Manifest",
			mcp.WithResourceDescription("The generated files.json: an ordered JSON array of document filenames."),
			mcp.WithMIMEType("application/json"),
		),
		s.readManifestResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	files, _, err := s.svc.Manifest(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("manifest not available: %v (run rebuild_manifest first)", err)), nil
	}
	if len(files) == 0 {
		return mcp.NewToolResultText("no documents"), nil
	}
	return mcp.NewToolResultText(strings.Join(files, "\n")), nil
}

func (s *Server) rebuildManifest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sum, err := s.svc.Rebuild(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(sum, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) buildHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)
	runs, err := s.svc.History(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(runs) == 0 {
		return mcp.NewToolResultText("no build runs recorded"), nil
	}
	out, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readManifestResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	files, _, err := s.svc.Manifest(ctx)
	if err != nil {
		return nil, fmt.Errorf("manifest not available: %w", err)
	}
	data, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "jera://manifest",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
