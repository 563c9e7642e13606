package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/haddadrm/chrome-devtools-mcp/internal/cdp"
)

type elementStyles struct {
	UID        string            `json:"uid"`
	Inline     map[string]string `json:"inline"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Computed   map[string]string `json:"computed,omitempty"`
}

func registerGetElementStyles(s *server.MCPServer, d *Deps) {
	tool := mcp.NewTool("get_element_styles",
		mcp.WithDescription("Return the inline styles of an element, and optionally its computed styles."),
		mcp.WithString("uid",
			mcp.Required(),
			mcp.Description("Element uid from take_snapshot.")),
		mcp.WithBoolean("includeComputed",
			mcp.DefaultBool(false),
			mcp.Description("Also return the computed style values.")),
		mcp.WithArray("properties",
			mcp.Description("Restrict output to these property names."),
			mcp.Items(map[string]any{"type": "string"})),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		uid, err := req.RequireString("uid")
		if err != nil {
			return errResult(err)
		}
		includeComputed := req.GetBool("includeComputed", false)
		properties := req.GetStringSlice("properties", nil)

		page, sess, err := d.session()
		if err != nil {
			return errResult(err)
		}
		nodeID, _, err := d.resolveUID(sess, page, uid)
		if err != nil {
			return errResult(err)
		}

		inline, attributes, err := cdp.GetInlineStyles(sess, nodeID, properties)
		if err != nil {
			return errResult(err)
		}

		out := elementStyles{UID: uid, Inline: inline, Attributes: attributes}
		if includeComputed {
			computed, err := cdp.GetComputedStyles(sess, nodeID, properties)
			if err != nil {
				return errResult(err)
			}
			out.Computed = computed
		}
		return jsonResult(out)
	})
}
