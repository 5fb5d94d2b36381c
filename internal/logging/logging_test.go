package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "warn", "json")

	l.Info().Msg("hidden")
	l.Warn().Str("component", "test").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"component":"test"`)
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())
}

func TestNewLoggerUnknownLevel(t *testing.T) {
	l := newLogger(&bytes.Buffer{}, "loud", "")
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}
