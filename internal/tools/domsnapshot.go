package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/haddadrm/chrome-devtools-mcp/internal/cdp"
)

func registerCaptureDOMSnapshot(s *server.MCPServer, d *Deps) {
	tool := mcp.NewTool("capture_dom_snapshot",
		mcp.WithDescription("Capture a flattened whole-document snapshot, capped at 50 nodes per "+
			"document. The truncated flag reports when the cap cut data."),
		mcp.WithArray("computedStyles",
			mcp.Description("Computed style properties to sample per node."),
			mcp.Items(map[string]any{"type": "string"})),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		computedStyles := req.GetStringSlice("computedStyles", nil)

		_, sess, err := d.session()
		if err != nil {
			return errResult(err)
		}
		snap, err := cdp.CaptureSnapshot(sess, computedStyles)
		if err != nil {
			return errResult(err)
		}
		return jsonResult(snap)
	})
}
