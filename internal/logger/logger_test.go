package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"user", "alice", "auth_token", "abc.def.ghi", "Password", "hunter22", "dangling"})
	assert.Equal(t, []interface{}{"user", "alice", "auth_token", "[REDACTED]", "Password", "[REDACTED]", "dangling"}, out)
}

func TestLoggerWritesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("component", "test").Info("hello", "token", "secret-value", "count", 3)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "test", fields["component"])
		assert.Equal(t, "[REDACTED]", fields["token"])
		assert.Equal(t, int64(3), fields["count"])
	}
}

func TestLoggerReportsCallerOfWrapper(t *testing.T) {
	var callers []string
	hook := zap.Hooks(func(e zapcore.Entry) error {
		callers = append(callers, filepath.Base(e.Caller.File))
		return nil
	})

	for _, mode := range []string{"prod", "dev"} {
		callers = nil
		l, err := New(mode, hook)
		require.NoError(t, err)

		l.Info("direct")
		l.With("component", "test").Warn("derived")
		l.StdLog().Print("adapted")

		assert.Equal(t, []string{"logger_test.go", "logger_test.go", "logger_test.go"}, callers, mode)
	}
}
