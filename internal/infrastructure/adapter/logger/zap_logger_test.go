package logger

import (
	"testing"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/stretchr/testify/assert"
)

func TestZapLoggerLevel(t *testing.T) {
	l := NewZapLogger(true)

	assert.Equal(t, core.LogLevelInfo, l.GetLevel())

	l.SetLevel(core.LogLevelError)
	assert.Equal(t, core.LogLevelError, l.GetLevel())

	child := l.With(map[string]any{"component": "test"})
	assert.Equal(t, core.LogLevelError, child.GetLevel(), "child shares the parent level")

	l.SetLevel(core.LogLevelDebug)
	assert.Equal(t, core.LogLevelDebug, child.GetLevel())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, core.LogLevelDebug, core.ParseLogLevel("debug"))
	assert.Equal(t, core.LogLevelWarn, core.ParseLogLevel("warn"))
	assert.Equal(t, core.LogLevelError, core.ParseLogLevel("error"))
	assert.Equal(t, core.LogLevelInfo, core.ParseLogLevel("verbose"))
}

func TestNoopLogger(t *testing.T) {
	l := NewNoopLogger()
	l.SetLevel(core.LogLevelWarn)

	assert.Equal(t, core.LogLevelWarn, l.GetLevel())
	assert.Same(t, l, l.With(map[string]any{"k": "v"}))
	assert.NoError(t, l.Flush())
}
