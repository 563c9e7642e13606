package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/haddadrm/chrome-devtools-mcp/internal/cdp"
)

func registerGetBoxModel(s *server.MCPServer, d *Deps) {
	tool := mcp.NewTool("get_box_model",
		mcp.WithDescription("Return the content/padding/border/margin rectangles of an element. "+
			"Elements without a box model (hidden, SVG children) report boxModel null."),
		mcp.WithString("uid",
			mcp.Required(),
			mcp.Description("Element uid from take_snapshot.")),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		uid, err := req.RequireString("uid")
		if err != nil {
			return errResult(err)
		}

		page, sess, err := d.session()
		if err != nil {
			return errResult(err)
		}
		nodeID, _, err := d.resolveUID(sess, page, uid)
		if err != nil {
			return errResult(err)
		}

		model, err := cdp.GetBoxModel(sess, nodeID)
		if err != nil {
			// Enrichment gap: the node resolved, it just has no box model.
			var cerr *cdp.Error
			if errors.As(err, &cerr) && cerr.Kind == cdp.KindOptionalDataUnavailable {
				return jsonResult(map[string]any{
					"uid":      uid,
					"boxModel": nil,
					"note":     cerr.Error(),
				})
			}
			return errResult(err)
		}
		return jsonResult(map[string]any{
			"uid":      uid,
			"boxModel": model,
		})
	})
}
