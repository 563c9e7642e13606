package tools

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod/lib/proto"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ysmood/gson"
)

// maxScreenshotWidth keeps screenshots small enough for model context.
const maxScreenshotWidth = 1024

func registerTakeScreenshot(s *server.MCPServer, d *Deps) {
	tool := mcp.NewTool("take_screenshot",
		mcp.WithDescription("Capture a JPEG screenshot of the selected page, downscaled to at most 1024px wide."),
		mcp.WithBoolean("fullPage",
			mcp.DefaultBool(false),
			mcp.Description("Capture the whole scrollable page instead of the viewport.")),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		fullPage := req.GetBool("fullPage", false)

		page, _, err := d.session()
		if err != nil {
			return errResult(err)
		}

		imgBytes, err := page.Screenshot(fullPage, &proto.PageCaptureScreenshot{
			Format:  proto.PageCaptureScreenshotFormatJpeg,
			Quality: gson.Int(80),
		})
		if err != nil {
			return errResult(fmt.Errorf("screenshot failed: %w", err))
		}

		img, _, err := image.Decode(bytes.NewReader(imgBytes))
		if err != nil {
			return errResult(fmt.Errorf("image decode failed: %w", err))
		}
		if img.Bounds().Dx() > maxScreenshotWidth {
			img = imaging.Resize(img, maxScreenshotWidth, 0, imaging.Lanczos)
		}

		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
			return errResult(fmt.Errorf("jpeg encode failed: %w", err))
		}

		caption := fmt.Sprintf("screenshot %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
		encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
		return mcp.NewToolResultImage(caption, encoded, "image/jpeg"), nil
	})
}
