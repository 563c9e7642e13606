package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls how the process logger is built.
type Config struct {
	Level string // debug, info, warn, error
	Dev   bool   // console encoder instead of JSON
	Dir   string // log file directory, empty disables the file sink
}

// New builds the process-wide zap logger. Logs always go to stderr (stdout is
// reserved for the MCP stdio transport); when Dir is set a timestamped JSON
// log file is written as well.
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zcfg zap.Config
	if cfg.Dev {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		name := fmt.Sprintf("%s_server.log", time.Now().Format("2006-01-02_15-04-05"))
		zcfg.OutputPaths = append(zcfg.OutputPaths, filepath.Join(cfg.Dir, name))
	}

	log, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}
