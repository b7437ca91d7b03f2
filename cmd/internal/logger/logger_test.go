package logger

import (
	"testing"

	"github.com/gookit/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelsFor(t *testing.T) {
	levels := levelsFor("warn")
	assert.Contains(t, levels, slog.ErrorLevel)
	assert.Contains(t, levels, slog.WarnLevel)
	assert.NotContains(t, levels, slog.InfoLevel)
	assert.NotContains(t, levels, slog.DebugLevel)

	levels = levelsFor("")
	assert.Contains(t, levels, slog.InfoLevel)
	assert.NotContains(t, levels, slog.DebugLevel)

	assert.Contains(t, levelsFor("debug"), slog.DebugLevel)
}

func TestInitReplacesGlobalLogger(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	t.Setenv("TEST_LOG_LEVEL", "DEBUG")
	InitFromEnv("TEST_LOG_LEVEL", "error")
	_, ok := Log.(*slog.Logger)
	require.True(t, ok)
	assert.NotSame(t, prev, Log)
}

func TestWithServiceName(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")
	assert.Equal(t, defaultServiceName, withServiceName(nil)["service_name"])

	t.Setenv("SERVICE_NAME", "blog-edge")
	assert.Equal(t, "blog-edge", withServiceName(Fields{"k": 1})["service_name"])

	fields := withServiceName(Fields{"service_name": "explicit"})
	assert.Equal(t, "explicit", fields["service_name"])
}

type nopLogger struct{ infos int }

func (n *nopLogger) Debug(args ...any)                 {}
func (n *nopLogger) Info(args ...any)                  { n.infos++ }
func (n *nopLogger) Warn(args ...any)                  {}
func (n *nopLogger) Error(args ...any)                 {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}

func TestFieldsHelpersFallBackToPlainLogger(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	nop := &nopLogger{}
	Log = nop
	InfoWithFields("hello", Fields{"request_id": "r1"})
	DebugWithFields("ignored", nil)
	assert.Equal(t, 1, nop.infos)
}
