package main

import (
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/haddadrm/chrome-devtools-mcp/internal/a11y"
	"github.com/haddadrm/chrome-devtools-mcp/internal/browser"
	"github.com/haddadrm/chrome-devtools-mcp/internal/cdp"
	"github.com/haddadrm/chrome-devtools-mcp/internal/env"
	"github.com/haddadrm/chrome-devtools-mcp/internal/logger"
	"github.com/haddadrm/chrome-devtools-mcp/internal/server"
	"github.com/haddadrm/chrome-devtools-mcp/internal/tools"
)

var version = "0.3.0"

func main() {
	envService := env.NewService()

	zlog, err := logger.New(logger.Config{
		Level: envService.Get("LOG_LEVEL"),
		Dev:   envService.GetBool("LOG_DEV", false),
		Dir:   envService.Get("LOG_DIR"),
	})
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	browserCfg := browser.DefaultConfig()
	browserCfg.Headless = envService.GetBool("HEADLESS", true)
	browserCfg.NoSandbox = envService.GetBool("NO_SANDBOX", true)
	browserCfg.ChromePath = envService.Get("CHROME_PATH")
	browserCfg.StartURL = envService.Get("START_URL")

	browserManager, err := browser.New(browserCfg, zlog.Named("browser"))
	if err != nil {
		zlog.Fatal("browser launch failed", zap.Error(err))
	}
	defer browserManager.Close()

	sessions := cdp.NewManager(zlog.Named("cdp"),
		cdp.WithSettleDelay(envService.GetDuration("TREE_SETTLE_MS", 100*time.Millisecond)))
	snaps := a11y.NewSnapshotter(zlog.Named("a11y"))

	// Page close drops the session and the UID table synchronously.
	browserManager.OnPageClose(sessions.Remove)
	browserManager.OnPageClose(snaps.Drop)

	deps := &tools.Deps{
		Log:      zlog.Named("tools"),
		Browser:  browserManager,
		Sessions: sessions,
		Snaps:    snaps,
	}
	mcpServer := server.New(version, deps)

	if addr := envService.Get("HTTP_ADDR"); addr != "" {
		if err := server.ServeHTTP(mcpServer, addr, zlog); err != nil {
			zlog.Fatal("http server failed", zap.Error(err))
		}
		return
	}

	zlog.Info("serving MCP over stdio", zap.String("version", version))
	if err := server.ServeStdio(mcpServer); err != nil {
		zlog.Error("stdio server stopped", zap.Error(err))
		os.Exit(1)
	}
}
