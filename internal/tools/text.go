package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/haddadrm/chrome-devtools-mcp/internal/htmlutil"
)

func registerGetText(s *server.MCPServer, d *Deps) {
	tool := mcp.NewTool("get_text",
		mcp.WithDescription("Return the visible text of the page with scripts, styles and markup noise removed."),
		mcp.WithNumber("maxLength",
			mcp.Description("Byte cap on the returned text."),
			mcp.Min(1), mcp.Max(100000), mcp.DefaultNumber(20000)),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		maxLength := req.GetInt("maxLength", 20000)
		if maxLength < 1 || maxLength > 100000 {
			return mcp.NewToolResultError("maxLength must be between 1 and 100000"), nil
		}

		page, _, err := d.session()
		if err != nil {
			return errResult(err)
		}
		raw, err := page.HTML()
		if err != nil {
			return errResult(err)
		}

		return jsonResult(map[string]any{
			"text": htmlutil.Text(raw, maxLength),
		})
	})
}
