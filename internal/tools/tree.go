package tools

import (
	"context"
	"fmt"

	"github.com/go-rod/rod/lib/proto"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/haddadrm/chrome-devtools-mcp/internal/cdp"
)

func registerGetDOMTree(s *server.MCPServer, d *Deps) {
	tool := mcp.NewTool("get_dom_tree",
		mcp.WithDescription("Return the element tree of the page (or of one element) as nested "+
			"{tag, id, class, children} objects. Text and comment nodes are omitted."),
		mcp.WithString("uid",
			mcp.Description("Root element uid from take_snapshot. Omit to start at the document root.")),
		mcp.WithNumber("depth",
			mcp.Description("How many levels to descend."),
			mcp.Min(1), mcp.Max(20), mcp.DefaultNumber(2)),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		depth := req.GetInt("depth", 2)
		if depth < cdp.MinTreeDepth || depth > cdp.MaxTreeDepth {
			return mcp.NewToolResultError(fmt.Sprintf("depth must be between %d and %d", cdp.MinTreeDepth, cdp.MaxTreeDepth)), nil
		}
		uid := req.GetString("uid", "")

		page, sess, err := d.session()
		if err != nil {
			return errResult(err)
		}

		var root proto.DOMNodeID
		if uid != "" {
			root, _, err = d.resolveUID(sess, page, uid)
		} else {
			root, err = cdp.DocumentRoot(sess)
		}
		if err != nil {
			return errResult(err)
		}

		tree, err := cdp.BuildTree(sess, root, depth)
		if err != nil {
			return errResult(err)
		}
		return jsonResult(map[string]any{
			"depth": depth,
			"tree":  tree,
		})
	})
}
