package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/haddadrm/chrome-devtools-mcp/internal/cdp"
)

func registerHighlight(s *server.MCPServer, d *Deps) {
	highlight := mcp.NewTool("highlight_element",
		mcp.WithDescription("Draw the DevTools overlay on an element. With durationMs > 0 the "+
			"highlight hides itself after the delay; overlapping highlights are allowed."),
		mcp.WithString("uid",
			mcp.Required(),
			mcp.Description("Element uid from take_snapshot.")),
		mcp.WithNumber("durationMs",
			mcp.Description("Auto-hide delay in milliseconds. 0 keeps the highlight until hide_highlight."),
			mcp.Min(0), mcp.Max(30000), mcp.DefaultNumber(2000)),
	)

	s.AddTool(highlight, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		uid, err := req.RequireString("uid")
		if err != nil {
			return errResult(err)
		}
		durationMs := req.GetInt("durationMs", 2000)
		if durationMs < 0 || durationMs > 30000 {
			return mcp.NewToolResultError("durationMs must be between 0 and 30000"), nil
		}

		page, sess, err := d.session()
		if err != nil {
			return errResult(err)
		}
		_, backendID, err := d.resolveUID(sess, page, uid)
		if err != nil {
			return errResult(err)
		}

		duration := time.Duration(durationMs) * time.Millisecond
		if _, err := cdp.Highlight(sess, d.Log, backendID, duration); err != nil {
			return errResult(err)
		}
		return jsonResult(map[string]any{
			"uid":        uid,
			"durationMs": durationMs,
		})
	})

	hide := mcp.NewTool("hide_highlight",
		mcp.WithDescription("Clear the element highlight overlay. Succeeds even when nothing is highlighted."),
	)

	s.AddTool(hide, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, sess, err := d.session()
		if err != nil {
			return errResult(err)
		}
		if err := cdp.HideHighlight(sess, d.Log); err != nil {
			return errResult(err)
		}
		return jsonResult(map[string]any{"hidden": true})
	})
}
