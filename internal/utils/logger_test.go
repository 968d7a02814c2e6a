package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("default logger", func(t *testing.T) {
		logger := NewDefaultLogger()
		require.NotNil(t, logger)
	})

	t.Run("json output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LoggerOptions{
			Level:  "info",
			Format: "json",
			Output: &buf,
		})
		logger.Info().Msg("checkout published")
		assert.Contains(t, buf.String(), `"message":"checkout published"`)
	})

	t.Run("pretty output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LoggerOptions{
			Level:  "info",
			Format: "pretty",
			Output: &buf,
		})
		logger.Info().Msg("hello")
		assert.Contains(t, buf.String(), "hello")
	})

	t.Run("level filters debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LoggerOptions{Level: "warn", Format: "json", Output: &buf})
		logger.Info().Msg("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("verbose forces debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LoggerOptions{Level: "error", Format: "json", Output: &buf, Verbose: true})
		logger.Debug().Msg("visible")
		assert.Contains(t, buf.String(), "visible")
	})
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerOptions{Level: "info", Format: "json", Output: &buf})

	logger.WithComponent("repocache").WithEntity("component:default/svc").Info().Msg("x")

	assert.Contains(t, buf.String(), `"component":"repocache"`)
	assert.Contains(t, buf.String(), `"entity":"component:default/svc"`)
}

func TestLogger_OrNop(t *testing.T) {
	var logger *Logger
	assert.NotNil(t, logger.OrNop())

	real := NewDefaultLogger()
	assert.Same(t, real, real.OrNop())
}
