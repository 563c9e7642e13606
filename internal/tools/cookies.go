package tools

import (
	"context"

	"github.com/go-rod/rod/lib/proto"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/haddadrm/chrome-devtools-mcp/internal/cdp"
)

type cookieInfo struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Domain   string `json:"domain"`
	Path     string `json:"path"`
	HTTPOnly bool   `json:"httpOnly"`
	Secure   bool   `json:"secure"`
}

// Cookie tools run on short-lived scoped sessions released on every exit
// path, so storage access never pollutes the page-bound session's
// enabled-domain state.
func registerCookies(s *server.MCPServer, d *Deps) {
	list := mcp.NewTool("list_cookies",
		mcp.WithDescription("List the cookies visible to the selected page."),
	)

	s.AddTool(list, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		page, err := d.Browser.SelectedPage()
		if err != nil {
			return errResult(err)
		}
		sess := d.Sessions.Scoped(page)
		defer sess.Release()

		res, err := proto.NetworkGetCookies{}.Call(sess.Client())
		if err != nil {
			return errResult(err)
		}

		cookies := make([]cookieInfo, 0, len(res.Cookies))
		for _, c := range res.Cookies {
			cookies = append(cookies, cookieInfo{
				Name:     c.Name,
				Value:    c.Value,
				Domain:   c.Domain,
				Path:     c.Path,
				HTTPOnly: c.HTTPOnly,
				Secure:   c.Secure,
			})
		}
		return jsonResult(map[string]any{
			"count":   len(cookies),
			"cookies": cookies,
		})
	})

	clear := mcp.NewTool("clear_cookies",
		mcp.WithDescription("Delete every browser cookie. Requires confirm=true."),
		mcp.WithBoolean("confirm",
			mcp.DefaultBool(false),
			mcp.Description("Must be true to actually clear cookies.")),
	)

	s.AddTool(clear, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !req.GetBool("confirm", false) {
			return errResult(cdp.NewConfirmationRequired("clear_cookies"))
		}

		page, err := d.Browser.SelectedPage()
		if err != nil {
			return errResult(err)
		}
		sess := d.Sessions.Scoped(page)
		defer sess.Release()

		if err := (proto.NetworkClearBrowserCookies{}).Call(sess.Client()); err != nil {
			return errResult(err)
		}
		return jsonResult(map[string]any{"cleared": true})
	})
}
