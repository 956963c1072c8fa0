// Package logging builds the zap loggers used by the storefront hosts.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vcrobe/storefront/console"
)

// Level returns the minimum level for the given debug setting.
func Level(debug bool) zapcore.Level {
	if debug {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

// New builds the JSON production logger used by the CLI and server.
func New(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(Level(debug))
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// NewBrowser builds a console-encoded logger that writes through the browser console.
func NewBrowser(debug bool) *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(console.Writer{}),
		Level(debug),
	)
	return zap.New(core)
}
