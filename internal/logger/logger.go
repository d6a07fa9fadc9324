// Package logger builds the process-wide zap logger.
package logger

import (
	"os"
	"strings"

	"go.elastic.co/ecszap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates an ECS-encoded JSON logger writing to stdout and installs it as the zap global.
// "DEVELOPMENT" and "debug" enable debug output, anything else logs at info.
func New(level string) *zap.Logger {
	encoderConfig := ecszap.NewDefaultEncoderConfig()
	core := ecszap.NewCore(encoderConfig, os.Stdout, ParseLevel(level))
	log := zap.New(core, zap.AddCaller())
	zap.ReplaceGlobals(log)
	return log
}

// ParseLevel maps a configured level name to a zap level.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "development", "debug":
		return zap.DebugLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
