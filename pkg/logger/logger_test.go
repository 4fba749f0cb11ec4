package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, InfoLevel, ParseLevel("loud"))
	assert.Equal(t, InfoLevel, ParseLevel(""))
}

func TestNewZerologWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerolog(&Config{Level: InfoLevel, Output: &buf})

	l.Debug().Msg("hidden")
	l.Info().Str("component", "store").Msg("bootstrap finished")

	out := buf.String()
	assert.Contains(t, out, "bootstrap finished")
	assert.Contains(t, out, "store")
	assert.NotContains(t, out, "hidden")
}

func TestNewSugaredLevel(t *testing.T) {
	l, err := NewSugared(WarnLevel)
	require.NoError(t, err)
	assert.False(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Desugar().Core().Enabled(zapcore.WarnLevel))
}
