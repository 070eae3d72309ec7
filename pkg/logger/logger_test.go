package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func restore(t *testing.T) {
	prev := Log
	t.Cleanup(func() {
		Log = prev
		zap.ReplaceGlobals(prev)
	})
}

func TestInit_LevelOverride(t *testing.T) {
	restore(t)

	Init("production", "warn")
	assert.False(t, Log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Log.Core().Enabled(zapcore.WarnLevel))

	Init("development", "")
	assert.True(t, Log.Core().Enabled(zapcore.DebugLevel))
}

func TestInit_UnknownLevelPanics(t *testing.T) {
	restore(t)
	assert.Panics(t, func() { Init("development", "loud") })
}
