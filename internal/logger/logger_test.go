package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, json := range []bool{false, true} {
		l, err := New(json, true)
		require.NoError(t, err)
		require.True(t, l.Core().Enabled(zapcore.DebugLevel))
	}

	l, err := New(true, false)
	require.NoError(t, err)
	require.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestTruncateForLog(t *testing.T) {
	require.Equal(t, "abc", TruncateForLog("  abc ", 5))
	require.Equal(t, "ab...", TruncateForLog("abcdef", 2))
	require.Equal(t, "", TruncateForLog("abc", 0))
	require.Equal(t, "жё...", TruncateForLog("жёлтый", 2))
}

func TestBackendFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	zap.New(core).With(BackendFields("ollama", " llama3 ")...).Info("call")

	entry := logs.All()[0]
	require.Equal(t, "ollama", entry.ContextMap()[FieldBackend])
	require.Equal(t, "llama3", entry.ContextMap()[FieldModel])

	require.Len(t, BackendFields("heuristic", ""), 1)
	require.Empty(t, BackendFields("", " "))
}

func TestOrNop(t *testing.T) {
	require.NotNil(t, OrNop(nil))
	l := zap.NewExample()
	require.Same(t, l, OrNop(l))
}
