package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/haddadrm/chrome-devtools-mcp/internal/cdp"
)

func registerGetOuterHTML(s *server.MCPServer, d *Deps) {
	tool := mcp.NewTool("get_outer_html",
		mcp.WithDescription("Return the outer HTML of an element, truncated to maxLength."),
		mcp.WithString("uid",
			mcp.Required(),
			mcp.Description("Element uid from take_snapshot.")),
		mcp.WithNumber("maxLength",
			mcp.Description("Byte cap on the returned HTML."),
			mcp.Min(1), mcp.Max(100000), mcp.DefaultNumber(2000)),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		uid, err := req.RequireString("uid")
		if err != nil {
			return errResult(err)
		}
		maxLength := req.GetInt("maxLength", 2000)
		if maxLength < 1 || maxLength > 100000 {
			return mcp.NewToolResultError("maxLength must be between 1 and 100000"), nil
		}

		page, sess, err := d.session()
		if err != nil {
			return errResult(err)
		}
		nodeID, _, err := d.resolveUID(sess, page, uid)
		if err != nil {
			return errResult(err)
		}

		html, truncated, err := cdp.GetOuterHTML(sess, nodeID, maxLength)
		if err != nil {
			var cerr *cdp.Error
			if errors.As(err, &cerr) && cerr.Kind == cdp.KindOptionalDataUnavailable {
				return jsonResult(map[string]any{
					"uid":       uid,
					"outerHTML": nil,
					"note":      cerr.Error(),
				})
			}
			return errResult(err)
		}
		return jsonResult(map[string]any{
			"uid":       uid,
			"outerHTML": html,
			"truncated": truncated,
		})
	})
}
