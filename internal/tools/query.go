package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/haddadrm/chrome-devtools-mcp/internal/cdp"
)

func registerQuerySelector(s *server.MCPServer, d *Deps) {
	tool := mcp.NewTool("query_selector",
		mcp.WithDescription("Find elements matching a CSS selector. Zero matches is a normal result, not an error."),
		mcp.WithString("selector",
			mcp.Required(),
			mcp.Description("CSS selector, e.g. \".item\" or \"#main > a\".")),
		mcp.WithBoolean("all",
			mcp.DefaultBool(false),
			mcp.Description("Return every match instead of the first.")),
		mcp.WithNumber("limit",
			mcp.Description("Cap on returned matches when all=true."),
			mcp.Min(1), mcp.Max(100), mcp.DefaultNumber(20)),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		selector, err := req.RequireString("selector")
		if err != nil {
			return errResult(err)
		}
		all := req.GetBool("all", false)
		limit := req.GetInt("limit", 20)
		if limit < 1 || limit > 100 {
			return mcp.NewToolResultError("limit must be between 1 and 100"), nil
		}

		_, sess, err := d.session()
		if err != nil {
			return errResult(err)
		}

		nodes, err := cdp.QuerySelector(sess, selector, all, limit)
		if err != nil {
			return errResult(err)
		}

		if len(nodes) == 0 {
			return jsonResult(map[string]any{
				"found":   0,
				"message": fmt.Sprintf("No elements matched selector %q.", selector),
			})
		}
		return jsonResult(map[string]any{
			"found": len(nodes),
			"nodes": nodes,
		})
	})
}
