package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/haddadrm/chrome-devtools-mcp/internal/cdp"
)

func registerCompareElementStyles(s *server.MCPServer, d *Deps) {
	tool := mcp.NewTool("compare_element_styles",
		mcp.WithDescription("Compare the computed styles of two elements property by property."),
		mcp.WithString("uid1",
			mcp.Required(),
			mcp.Description("First element uid.")),
		mcp.WithString("uid2",
			mcp.Required(),
			mcp.Description("Second element uid.")),
		mcp.WithArray("properties",
			mcp.Description("Properties to compare. Defaults to a set of common layout and visual properties."),
			mcp.Items(map[string]any{"type": "string"})),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		uid1, err := req.RequireString("uid1")
		if err != nil {
			return errResult(err)
		}
		uid2, err := req.RequireString("uid2")
		if err != nil {
			return errResult(err)
		}
		properties := req.GetStringSlice("properties", nil)

		page, sess, err := d.session()
		if err != nil {
			return errResult(err)
		}
		node1, _, err := d.resolveUID(sess, page, uid1)
		if err != nil {
			return errResult(err)
		}
		node2, _, err := d.resolveUID(sess, page, uid2)
		if err != nil {
			return errResult(err)
		}

		result, err := cdp.CompareStyles(sess, node1, node2, properties)
		if err != nil {
			return errResult(err)
		}
		return jsonResult(map[string]any{
			"differenceCount": len(result.Differences),
			"differences":     result.Differences,
			"sameProperties":  result.Same,
		})
	})
}
