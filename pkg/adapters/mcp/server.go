package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/previewkit"
	"github.com/aretw0/previewkit/pkg/css"
	"github.com/aretw0/previewkit/pkg/domain"
	"github.com/aretw0/previewkit/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server exposes the preview registry and the CSS helpers as MCP tools.
type Server struct {
	store     ports.PreviewStore
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(store ports.PreviewStore) *Server {
	s := &Server{
		store:     store,
		mcpServer: server.NewMCPServer("previewkit-mcp", previewkit.Version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("css_padding",
		mcp.WithDescription("Render CSS padding declarations. Without a side, values form the padding shorthand."),
		mcp.WithString("values", mcp.Required(), mcp.Description("Space separated values, e.g. \"10px 20px\"")),
		mcp.WithString("side", mcp.Description("One of top, right, bottom, left (optional)")),
	), s.handleCSSPadding)

	s.mcpServer.AddTool(mcp.NewTool("list_previews",
		mcp.WithDescription("List the preview requests builds have sent to the IDE."),
	), s.handleListPreviews)

	s.mcpServer.AddTool(mcp.NewTool("get_preview",
		mcp.WithDescription("Get the preview request for one target."),
		mcp.WithString("target", mcp.Required(), mcp.Description("Fully qualified preview name")),
	), s.handleGetPreview)
}

var sides = map[string]func(css.StyleBuilder, css.Numeric){
	"top":    css.PaddingTop,
	"right":  css.PaddingRight,
	"bottom": css.PaddingBottom,
	"left":   css.PaddingLeft,
}

func (s *Server) handleCSSPadding(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var values []css.Numeric
	for _, field := range strings.Fields(request.GetString("values", "")) {
		v, err := css.ParseNumeric(field)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return mcp.NewToolResultError("values is required"), nil
	}

	var style css.Style
	side := request.GetString("side", "")
	if side == "" {
		css.Padding(&style, values...)
		return mcp.NewToolResultText(style.String()), nil
	}

	apply, ok := sides[side]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown side %q", side)), nil
	}
	if len(values) != 1 {
		return mcp.NewToolResultError("a side takes exactly one value"), nil
	}
	apply(&style, values[0])
	return mcp.NewToolResultText(style.String()), nil
}

// handleListPreviews skips targets removed between List and Load.
func (s *Server) handleListPreviews(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	targets, err := s.store.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	previews := make([]*domain.PreviewRequest, 0, len(targets))
	for _, target := range targets {
		req, err := s.store.Load(ctx, target)
		if errors.Is(err, domain.ErrPreviewNotFound) {
			continue
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load %q failed: %v", target, err)), nil
		}
		previews = append(previews, req)
	}
	return jsonResult(previews), nil
}

func (s *Server) handleGetPreview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target := request.GetString("target", "")
	req, err := s.store.Load(ctx, target)
	if errors.Is(err, domain.ErrPreviewNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("no preview for %q", target)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}
	return jsonResult(req), nil
}

func jsonResult(v any) *mcp.CallToolResult {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err))
	}
	return mcp.NewToolResultText(string(jsonBytes))
}
