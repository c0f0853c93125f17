package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"WARN":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got, s)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestContextLogger checks that the logger stored in a context is the one used by helpers.
func TestContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := NewWithWriter(&buf, zap.NewAtomicLevelAt(zapcore.DebugLevel))
	ctx := WithKV(WithName(ToContext(context.Background(), l), "swap"), "run_id", "abc")

	InfoKV(ctx, "Removed item", "name", "nw.pak")

	out := buf.String()
	require.Contains(t, out, "swap")
	require.Contains(t, out, "Removed item")
	require.Contains(t, out, "abc")
	require.Contains(t, out, "nw.pak")
}

// TestNestedNames checks that component names are printed joined with dots.
func TestNestedNames(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := NewWithWriter(&buf, zap.NewAtomicLevelAt(zapcore.InfoLevel))
	ctx := WithName(WithName(ToContext(context.Background(), l), "swap"), "finalizer")

	Info(ctx, "Renamed executable")

	require.Contains(t, buf.String(), "swap.finalizer")
}

// TestFromContextFallback ensures an empty context yields the fallback logger.
func TestFromContextFallback(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestWithLevel ensures a pinned level filters entries below it.
func TestWithLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := NewWithWriter(&buf, zap.NewAtomicLevelAt(zapcore.DebugLevel), WithLevel(zapcore.WarnLevel))
	l.Info("hidden")
	l.Warn("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}
