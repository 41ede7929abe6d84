package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("defaults to info", func(t *testing.T) {
		l, err := New("", false)
		require.NoError(t, err)
		assert.Equal(t, zapcore.InfoLevel, l.Level())
	})

	t.Run("rejects unknown levels", func(t *testing.T) {
		_, err := New("loud", false)
		assert.Error(t, err)
	})

	t.Run("level changes at runtime", func(t *testing.T) {
		l, err := New("warn", true)
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))

		require.NoError(t, l.SetLevel("debug"))
		assert.Equal(t, zapcore.DebugLevel, l.Level())
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

		assert.Error(t, l.SetLevel("nope"))
		assert.Equal(t, zapcore.DebugLevel, l.Level())
	})
}
