package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerPages(s *server.MCPServer, d *Deps) {
	list := mcp.NewTool("list_pages",
		mcp.WithDescription("List open pages with their index, URL and title."),
	)

	s.AddTool(list, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(map[string]any{"pages": d.Browser.List()})
	})

	selectPage := mcp.NewTool("select_page",
		mcp.WithDescription("Select the page that the inspection tools operate on."),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Min(0),
			mcp.Description("Page index from list_pages.")),
	)

	s.AddTool(selectPage, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		index, err := req.RequireInt("index")
		if err != nil {
			return errResult(err)
		}
		page, err := d.Browser.SelectPage(index)
		if err != nil {
			return errResult(err)
		}
		info, err := page.Info()
		if err != nil {
			return errResult(err)
		}
		return jsonResult(map[string]any{
			"index": index,
			"url":   info.URL,
			"title": info.Title,
		})
	})

	newPage := mcp.NewTool("new_page",
		mcp.WithDescription("Open a new page at the given URL and select it."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("URL to open.")),
	)

	s.AddTool(newPage, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := req.RequireString("url")
		if err != nil {
			return errResult(err)
		}
		_, index, err := d.Browser.NewPage(url)
		if err != nil {
			return errResult(err)
		}
		return jsonResult(map[string]any{
			"index": index,
			"url":   url,
		})
	})

	closePage := mcp.NewTool("close_page",
		mcp.WithDescription("Close the page at the given index. Its uids and session are dropped."),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Min(0),
			mcp.Description("Page index from list_pages.")),
	)

	s.AddTool(closePage, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		index, err := req.RequireInt("index")
		if err != nil {
			return errResult(err)
		}
		if err := d.Browser.ClosePage(index); err != nil {
			return errResult(err)
		}
		return jsonResult(map[string]any{"closed": index})
	})
}
