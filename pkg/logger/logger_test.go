package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestResolveLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, resolveLevel("warn", "debug"))
	assert.Equal(t, zapcore.DebugLevel, resolveLevel("", "debug"))
	assert.Equal(t, zapcore.InfoLevel, resolveLevel("", "release"))
	assert.Equal(t, zapcore.InfoLevel, resolveLevel("loud", "release"))
}
