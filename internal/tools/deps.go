// Package tools declares the MCP tools exposed to the agent and wires them to
// the CDP inspection core. Every tool returns one JSON document as a single
// text content item; failures become MCP error results carrying the core's
// human-readable messages.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/haddadrm/chrome-devtools-mcp/internal/a11y"
	"github.com/haddadrm/chrome-devtools-mcp/internal/browser"
	"github.com/haddadrm/chrome-devtools-mcp/internal/cdp"
)

// Deps are the collaborators shared by every tool handler.
type Deps struct {
	Log      *zap.Logger
	Browser  *browser.Manager
	Sessions *cdp.Manager
	Snaps    *a11y.Snapshotter
}

// Register adds every tool to the MCP server.
func Register(s *server.MCPServer, d *Deps) {
	registerTakeSnapshot(s, d)
	registerGetDOMTree(s, d)
	registerGetElementStyles(s, d)
	registerCompareElementStyles(s, d)
	registerQuerySelector(s, d)
	registerGetBoxModel(s, d)
	registerGetOuterHTML(s, d)
	registerHighlight(s, d)
	registerCaptureDOMSnapshot(s, d)
	registerGetText(s, d)
	registerTakeScreenshot(s, d)
	registerCookies(s, d)
	registerPages(s, d)
}

// session returns the selected page and its page-bound session.
func (d *Deps) session() (*rod.Page, *cdp.Session, error) {
	page, err := d.Browser.SelectedPage()
	if err != nil {
		return nil, nil, err
	}
	return page, d.Sessions.Get(page.TargetID, page), nil
}

// resolveUID maps a UID from the page's last snapshot to a node id on the
// page's session.
func (d *Deps) resolveUID(sess *cdp.Session, page *rod.Page, uid string) (proto.DOMNodeID, proto.DOMBackendNodeID, error) {
	return cdp.ResolveUID(sess, d.Snaps.Table(page.TargetID), uid)
}

// jsonResult renders v as one JSON line.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errResult converts any error into an MCP error result. The error message is
// the whole contract with the agent, so the core's tagged errors already
// carry recovery hints.
func errResult(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
