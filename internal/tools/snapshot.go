package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTakeSnapshot(s *server.MCPServer, d *Deps) {
	tool := mcp.NewTool("take_snapshot",
		mcp.WithDescription("Capture the accessibility tree of the selected page. "+
			"Every element gets a uid; pass these uids to the other inspection tools. "+
			"Taking a new snapshot invalidates all previous uids for the page."),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		page, sess, err := d.session()
		if err != nil {
			return errResult(err)
		}
		snap, err := d.Snaps.Take(sess, page.TargetID)
		if err != nil {
			return errResult(err)
		}
		return jsonResult(snap)
	})
}
