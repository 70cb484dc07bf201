// Package logging builds the process logger. Standard output carries the MCP
// stream, so log records go to stderr or to a rotating file, never stdout.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Cyclone1070/mcp-server-git/internal/config"
)

// New constructs a zap logger from the log section of the config.
// When cfg.File is set, records are appended to that file and rotated by
// lumberjack; otherwise they are written to stderr in console format.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	var sink io.Writer = os.Stderr
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.CallerKey = ""
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	if cfg.File != "" {
		sink = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	return NewWithWriter(encoder, sink, level), nil
}

// NewWithWriter builds a logger over an arbitrary sink.
func NewWithWriter(encoder zapcore.Encoder, sink io.Writer, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(encoder, zapcore.AddSync(sink), level)
	return zap.New(core).Named("mcp-server-git")
}
