package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"DEVELOPMENT": zap.DebugLevel,
		"debug":       zap.DebugLevel,
		"warn":        zap.WarnLevel,
		"error":       zap.ErrorLevel,
		"info":        zap.InfoLevel,
		"":            zap.InfoLevel,
		"PRODUCTION":  zap.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_ReplacesGlobals(t *testing.T) {
	log := New("debug")
	defer func() { _ = log.Sync() }()

	assert.Same(t, log, zap.L())
	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))
}
