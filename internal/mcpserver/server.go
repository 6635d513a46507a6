// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package mcpserver exposes the format, repair, and share operations as tools
// of a Model Context Protocol server.
//
// Failures of the operations themselves (invalid JSON, a link that is too
// long) are reported to the client as tool error results, not as protocol
// errors.
package mcpserver

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/creachadair/jsonfix/format"
	"github.com/creachadair/jsonfix/repair"
	"github.com/creachadair/jsonfix/share"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tool names.
const (
	FormatTool = "format_json"
	RepairTool = "repair_json"
	ShareTool  = "share_json"
)

// Tools implements the tool handlers.
type Tools struct {
	Mode    format.Mode   // default rendering mode for format_json
	Encoder share.Encoder // settings for share_json
	Logger  *slog.Logger  // if nil, use slog.Default()
}

func (t *Tools) log() *slog.Logger {
	if t.Logger == nil {
		return slog.Default()
	}
	return t.Logger
}

// New constructs a server with the given name and version, whose tools are
// served by t.
func New(name, version string, t *Tools) *server.MCPServer {
	s := server.NewMCPServer(name, version, server.WithToolCapabilities(true))

	s.AddTool(mcp.NewTool(FormatTool,
		mcp.WithDescription("Validate a JSON document strictly and render it beautified or minified"),
		mcp.WithString("text", mcp.Required(), mcp.Description("The JSON document")),
		mcp.WithString("mode", mcp.Description("Rendering mode"),
			mcp.Enum(format.Beautify.String(), format.Minify.String())),
	), t.Format)

	s.AddTool(mcp.NewTool(RepairTool,
		mcp.WithDescription("Repair common mistakes in a nearly-JSON document: trailing commas, "+
			"unquoted keys, single quotes, missing commas, and unbalanced brackets"),
		mcp.WithString("text", mcp.Required(), mcp.Description("The document to repair")),
	), t.Repair)

	s.AddTool(mcp.NewTool(ShareTool,
		mcp.WithDescription("Encode a valid JSON document into a share link"),
		mcp.WithString("text", mcp.Required(), mcp.Description("The JSON document")),
		mcp.WithString("base_url", mcp.Description("Prefix of the link; overrides the server default")),
	), t.Share)

	return s
}

// Serve runs s on stdin and stdout until the input is exhausted.
func Serve(s *server.MCPServer) error { return server.ServeStdio(s) }

// Format handles the format_json tool. Empty input yields an empty result,
// not an error.
func (t *Tools) Format(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	text, ok := args["text"].(string)
	if !ok {
		return mcp.NewToolResultError("text parameter is required"), nil
	}
	mode := t.Mode
	if s, ok := args["mode"].(string); ok && s != "" {
		m, err := format.ParseMode(s)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		mode = m
	}

	res, err := format.Format(text, mode)
	if err != nil {
		t.log().Debug("format failed", "tool", FormatTool, "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("Invalid JSON: %v", err)), nil
	} else if res.Empty() {
		return mcp.NewToolResultText(""), nil // no content, nothing to render
	}
	return mcp.NewToolResultText(res.Text), nil
}

// RepairReport is the JSON result of the repair_json tool.
type RepairReport struct {
	OK      bool     `json:"ok"`
	Text    string   `json:"text,omitempty"`
	Applied []string `json:"applied,omitempty"`
	Reason  string   `json:"reason,omitempty"`
}

// Repair handles the repair_json tool. A document that cannot be repaired
// yields a tool error whose text is the report.
func (t *Tools) Repair(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	text, ok := args["text"].(string)
	if !ok {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	res := repair.Repair(text)
	t.log().Debug("repair", "tool", RepairTool, "ok", res.OK, "applied", res.Applied)
	bits, err := json.MarshalIndent(RepairReport{
		OK:      res.OK,
		Text:    res.Text,
		Applied: res.Applied,
		Reason:  res.Reason,
	}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode report: %v", err)), nil
	}
	if !res.OK {
		return mcp.NewToolResultError(string(bits)), nil
	}
	return mcp.NewToolResultText(string(bits)), nil
}

// Share handles the share_json tool.
func (t *Tools) Share(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	text, ok := args["text"].(string)
	if !ok {
		return mcp.NewToolResultError("text parameter is required"), nil
	}
	enc := t.Encoder
	base, _ := args["base_url"].(string)
	enc.BaseURL = cmp.Or(base, enc.BaseURL)

	link, err := enc.Encode(text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(link), nil
}
