// Package server exposes the git tools to MCP clients over stdio.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/Cyclone1070/mcp-server-git/internal/tool"
	"github.com/Cyclone1070/mcp-server-git/internal/tool/repos"
	"github.com/Cyclone1070/mcp-server-git/internal/workflow/dispatcher"
)

const (
	serverName      = "mcp-git"
	repositoriesURI = "git://repositories"
)

// Server binds a dispatcher and a repository resolver to an MCP server.
type Server struct {
	server     *mcp.Server
	dispatcher *dispatcher.Dispatcher
	resolver   *repos.Resolver
	logger     *zap.Logger
}

// New registers every declared tool and the repositories resource.
func New(d *dispatcher.Dispatcher, resolver *repos.Resolver, version string, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		server:     mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil),
		dispatcher: d,
		resolver:   resolver,
		logger:     logger,
	}

	for _, decl := range d.Declarations() {
		schema, err := inputSchema(decl.Parameters)
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", decl.Name, err)
		}
		s.server.AddTool(&mcp.Tool{
			Name:        decl.Name,
			Description: decl.Description,
			InputSchema: schema,
		}, s.toolHandler(decl.Name))
	}

	s.server.AddResource(&mcp.Resource{
		URI:         repositoriesURI,
		Name:        "repositories",
		Description: "Git repositories this server may operate on, one path per line",
		MIMEType:    "text/plain",
	}, s.readRepositories)

	return s, nil
}

// Run serves MCP over stdin/stdout until the client disconnects or ctx ends.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("serving MCP over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) toolHandler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.call(ctx, name, req.Params.Arguments), nil
	}
}

// call runs a tool and folds any failure into an error result so the
// client sees the message instead of a protocol error.
func (s *Server) call(ctx context.Context, name string, raw json.RawMessage) *mcp.CallToolResult {
	args := map[string]any{}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &args); err != nil {
			return errorResult(fmt.Errorf("invalid arguments: %w", err))
		}
	}

	resp, err := s.dispatcher.Execute(ctx, name, args)
	if err != nil {
		return errorResult(err)
	}

	content := make([]mcp.Content, 0, len(resp.Content))
	for _, text := range resp.Content {
		content = append(content, &mcp.TextContent{Text: text})
	}
	return &mcp.CallToolResult{Content: content}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}

func (s *Server) readRepositories(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	paths, err := s.resolver.List(ctx, sessionRoots{session: req.Session})
	if err != nil {
		s.logger.Warn("listing repositories failed", zap.Error(err))
		return nil, err
	}
	s.logger.Debug("listed repositories", zap.Strings("paths", paths))

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      repositoriesURI,
			MIMEType: "text/plain",
			Text:     strings.Join(paths, "\n"),
		}},
	}, nil
}

// inputSchema converts a tool declaration's argument schema to the form
// the MCP SDK advertises.
func inputSchema(params *tool.Schema) (*jsonschema.Schema, error) {
	if params == nil {
		params = &tool.Schema{Type: tool.TypeObject}
	}
	if params.Type != tool.TypeObject {
		return nil, fmt.Errorf("argument schema must be an object, got %q", params.Type)
	}
	data, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}
