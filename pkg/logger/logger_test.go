package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zap.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zap.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zap.InfoLevel, parseLevel(""))
	assert.Equal(t, zap.InfoLevel, parseLevel("verbose"))
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		l, err := NewLogger(env, "debug")
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zap.DebugLevel))
	}
}

func TestNewLogger_LevelAndFields(t *testing.T) {
	l, err := NewLogger("production", "warn", zap.String("service", "slotbook"))
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))
}
