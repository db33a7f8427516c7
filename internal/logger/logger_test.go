package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	log, err := New("debug")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = New("warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))

	_, err = New("loud")
	assert.Error(t, err)
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, LevelFor(0))
	assert.Equal(t, zapcore.DebugLevel, LevelFor(1))
	assert.Equal(t, zapcore.DebugLevel, LevelFor(2))
	assert.Equal(t, zapcore.DebugLevel, LevelFor(5))
}
