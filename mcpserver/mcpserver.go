// Package mcpserver exposes the tool registry through the Model Context Protocol.
package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finmcp/tools"
	"github.com/effective-security/x/values"
	"github.com/effective-security/xlog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/finmcp", "mcpserver")

// Transports
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// DefaultPath is the endpoint of the streamable HTTP transport
const DefaultPath = "/mcp"

var emptySchema = json.RawMessage(`{"type":"object","properties":{}}`)

// schemaProvider is implemented by tools.Func
type schemaProvider interface {
	Schema() json.RawMessage
}

// Server is the MCP server of the registry tools
type Server struct {
	reg *tools.Registry
	srv *server.MCPServer
}

// New returns the server with every tool of the registry
func New(name, version string, reg *tools.Registry) (*Server, error) {
	s := &Server{
		reg: reg,
		srv: server.NewMCPServer(name, version, server.WithToolCapabilities(false)),
	}
	for _, tool := range reg.List() {
		schema, err := inputSchema(tool)
		if err != nil {
			return nil, err
		}
		s.srv.AddTool(mcp.NewToolWithRawSchema(tool.Name(), tool.Description(), schema), s.Handler(tool.Name()))
		logger.KV(xlog.DEBUG, "status", "tool_registered", "tool", tool.Name())
	}
	return s, nil
}

// MCP returns the protocol server
func (s *Server) MCP() *server.MCPServer {
	return s.srv
}

// Handler returns the MCP handler dispatching to the named tool.
// Tool failures are returned as error results, not protocol errors.
func (s *Server) Handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := arguments(req.Params.Arguments)
		if err != nil {
			return mcp.NewToolResultError(tools.CodeInvalidArgument + ": " + err.Error()), nil
		}

		res := s.reg.Dispatch(ctx, name, args)
		if res.Failed() {
			return mcp.NewToolResultError(res.Error.Code + ": " + res.Error.Message), nil
		}
		return mcp.NewToolResultText(text(res.Output)), nil
	}
}

// ServeStdio serves the protocol on the streams until ctx is done
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	logger.KV(xlog.INFO, "status", "mcp_serving", "transport", TransportStdio)
	err := server.NewStdioServer(s.srv).Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "mcp stdio server failed")
	}
	return nil
}

// HTTPHandler returns the streamable HTTP transport mounted at path
func (s *Server) HTTPHandler(path string) http.Handler {
	path = values.StringsCoalesce(path, DefaultPath)
	return server.NewStreamableHTTPServer(s.srv, server.WithEndpointPath(path))
}

func inputSchema(tool tools.ITool) (json.RawMessage, error) {
	if sp, ok := tool.(schemaProvider); ok {
		return sp.Schema(), nil
	}
	params := tool.Parameters()
	if params == nil {
		return emptySchema, nil
	}
	js, err := json.Marshal(params)
	if err != nil {
		return nil, errors.Wrapf(err, "tool %s: failed to encode parameters", tool.Name())
	}
	return js, nil
}

// arguments returns the raw tool arguments, a string argument
// is passed as is, any other value as JSON.
func arguments(v any) (string, error) {
	switch a := v.(type) {
	case nil:
		return "", nil
	case string:
		return a, nil
	case json.RawMessage:
		return string(a), nil
	}
	js, err := json.Marshal(v)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(js), nil
}

// text returns JSON strings unquoted, other values as JSON
func text(out json.RawMessage) string {
	if len(out) > 0 && out[0] == '"' {
		var s string
		if err := json.Unmarshal(out, &s); err == nil {
			return s
		}
	}
	return string(out)
}
