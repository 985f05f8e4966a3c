// Package mcp exposes the schema registry as an MCP server, so agent hosts
// can build validated records as tool calls.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/picket"
	"github.com/aretw0/picket/pkg/registry"
)

// BuildResponse is the structured result of the build tools.
type BuildResponse struct {
	Schema string          `json:"schema" jsonschema_description:"Name of the schema that built the record"`
	Shape  string          `json:"shape" jsonschema_description:"Record shape: mapping or tuple"`
	Record json.RawMessage `json:"record" jsonschema_description:"The constructed record as an ordered JSON object"`
}

// Server wraps a schema registry and exposes it as an MCP Server.
type Server struct {
	registry  *registry.Registry
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(reg *registry.Registry) *Server {
	s := &Server{
		registry:  reg,
		mcpServer: server.NewMCPServer("picket-mcp", strings.TrimSpace(picket.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: list_schemas
	s.mcpServer.AddTool(mcp.NewTool("list_schemas",
		mcp.WithDescription("List the registered schemas and their ordered field names."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out := make(map[string][]string)
		for _, name := range s.registry.Names() {
			if d, ok := s.registry.Get(name); ok {
				out[name] = d.Schema.Fields()
			}
		}
		jsonBytes, _ := json.Marshal(out)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: build_mapping
	mappingTool := mcp.NewTool("build_mapping",
		mcp.WithDescription("Build an ordered mapping record from positional and named values."),
		mcp.WithString("schema", mcp.Required(), mcp.Description("Schema name")),
		mcp.WithString("positional", mcp.Description("JSON array of positional raw values (optional)")),
		mcp.WithString("named", mcp.Description("JSON object of named raw values (optional)")),
		mcp.WithBoolean("cast", mcp.Description("Apply the schema's per-field casters before validation")),
		mcp.WithOutputSchema[BuildResponse](),
	)
	s.mcpServer.AddTool(mappingTool, mcp.NewStructuredToolHandler(s.buildHandler("mapping")))

	// TOOL: build_tuple
	tupleTool := mcp.NewTool("build_tuple",
		mcp.WithDescription("Build a fixed-arity tuple record from positional and named values."),
		mcp.WithString("schema", mcp.Required(), mcp.Description("Schema name")),
		mcp.WithString("positional", mcp.Description("JSON array of positional raw values (optional)")),
		mcp.WithString("named", mcp.Description("JSON object of named raw values (optional)")),
		mcp.WithBoolean("cast", mcp.Description("Apply the schema's per-field casters before validation")),
		mcp.WithOutputSchema[BuildResponse](),
	)
	s.mcpServer.AddTool(tupleTool, mcp.NewStructuredToolHandler(s.buildHandler("tuple")))
}

func (s *Server) buildHandler(shape string) func(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (BuildResponse, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (BuildResponse, error) {
		name, _ := args["schema"].(string)
		d, ok := s.registry.Get(name)
		if !ok {
			return BuildResponse{}, fmt.Errorf("unknown schema %q", name)
		}

		var positional []any
		if posStr, ok := args["positional"].(string); ok && posStr != "" {
			if err := json.Unmarshal([]byte(posStr), &positional); err != nil {
				return BuildResponse{}, fmt.Errorf("positional must be a JSON array: %w", err)
			}
		}

		var named map[string]any
		if namedStr, ok := args["named"].(string); ok && namedStr != "" {
			if err := json.Unmarshal([]byte(namedStr), &named); err != nil {
				return BuildResponse{}, fmt.Errorf("named must be a JSON object: %w", err)
			}
		}

		cast, _ := args["cast"].(bool)

		var built json.Marshaler
		var err error
		if shape == "tuple" {
			switch {
			case d.Sparse && cast:
				built, err = d.Schema.SparseTupleCast(positional, named)
			case d.Sparse:
				built, err = d.Schema.SparseTuple(positional, named)
			case cast:
				built, err = d.Schema.BuildTupleCast(positional, named)
			default:
				built, err = d.Schema.BuildTuple(positional, named)
			}
		} else {
			switch {
			case d.Sparse && cast:
				built, err = d.Schema.SparseMappingCast(positional, named)
			case d.Sparse:
				built, err = d.Schema.SparseMapping(positional, named)
			case cast:
				built, err = d.Schema.BuildMappingCast(positional, named)
			default:
				built, err = d.Schema.BuildMapping(positional, named)
			}
		}
		if err != nil {
			slog.Warn("MCP build failed", "schema", name, "shape", shape, "err", err)
			return BuildResponse{}, fmt.Errorf("build failed: %w", err)
		}

		data, err := built.MarshalJSON()
		if err != nil {
			return BuildResponse{}, fmt.Errorf("serialize record: %w", err)
		}

		return BuildResponse{Schema: name, Shape: shape, Record: data}, nil
	}
}
