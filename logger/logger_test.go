package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/relay/logger"
)

func newTestLogger(lvl slog.Level) (*logger.AppLogger, *bytes.Buffer) {
	b := new(bytes.Buffer)
	h := slog.NewJSONHandler(b, &slog.HandlerOptions{
		AddSource:   true,
		Level:       lvl,
		ReplaceAttr: logger.TruncSourceAttr,
	})

	return logger.New(slog.New(h)), b
}

func TestAppLoggerLevels(t *testing.T) {
	for _, tc := range []struct {
		name     string
		lvl      slog.Level
		log      func(l logger.Logger)
		expected string
	}{
		{"Debug", slog.LevelDebug, func(l logger.Logger) { l.Debug("msg", nil) }, "DEBUG"},
		{"Info", slog.LevelDebug, func(l logger.Logger) { l.Info("msg", nil) }, "INFO"},
		{"Warn", slog.LevelDebug, func(l logger.Logger) { l.Warn("msg", nil) }, "WARN"},
		{"Error", slog.LevelDebug, func(l logger.Logger) { l.Error("msg", nil) }, "ERROR"},
		{"Filtered", slog.LevelWarn, func(l logger.Logger) { l.Info("msg", nil) }, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			l, b := newTestLogger(tc.lvl)

			// Act
			tc.log(l)

			// Assert
			if tc.expected == "" {
				require.Zero(t, b.Len())
				return
			}

			var rec map[string]any
			require.Nil(t, json.Unmarshal(b.Bytes(), &rec))
			require.Equal(t, tc.expected, rec[slog.LevelKey])
			require.Equal(t, "msg", rec[slog.MessageKey])
			require.NotContains(t, rec, logger.LogContextKey)
		})
	}
}

func TestAppLoggerSource(t *testing.T) {
	// Arrange
	l, b := newTestLogger(slog.LevelInfo)

	// Act
	l.Info("here", nil)

	// Assert
	var rec map[string]any
	require.Nil(t, json.Unmarshal(b.Bytes(), &rec))

	src, ok := rec[slog.SourceKey].(string)
	require.True(t, ok)
	require.True(t, strings.HasPrefix(src, "logger/logger_test.go:"), src)

	// Arrange
	b.Reset()
	wrapped := func() { l.AddSkip(1).Info("wrapped", nil) }

	// Act
	wrapped()

	// Assert
	require.Nil(t, json.Unmarshal(b.Bytes(), &rec))
	require.True(t, strings.HasPrefix(rec[slog.SourceKey].(string), "logger/logger_test.go:"))
	require.Equal(t, 1, l.AddSkip(1).Skip())
	require.Zero(t, l.Skip())
}

func TestNewNil(t *testing.T) {
	require.Equal(t, slog.Default(), logger.New(nil).Slogger())
}

func TestColorizeLevel(t *testing.T) {
	// Arrange
	a := slog.Any(slog.LevelKey, slog.LevelWarn)

	// Act
	actual := logger.ColorizeLevel(nil, a)

	// Assert
	require.Contains(t, actual.Value.String(), "WARN")

	// Act
	actual = logger.ColorizeLevel([]string{"group"}, a)

	// Assert
	require.Equal(t, a, actual)
}

func TestDeleteLevelAttr(t *testing.T) {
	require.Equal(t, slog.Attr{}, logger.DeleteLevelAttr(nil, slog.Any(slog.LevelKey, slog.LevelInfo)))

	kept := slog.String("other", "value")
	require.Equal(t, kept, logger.DeleteLevelAttr(nil, kept))
}

func TestTruncSourceAttr(t *testing.T) {
	// Arrange
	a := slog.Any(slog.SourceKey, &slog.Source{File: "/home/dev/relay/auth/jwks.go", Line: 42})

	// Act
	actual := logger.TruncSourceAttr(nil, a)

	// Assert
	require.Equal(t, "auth/jwks.go:42", actual.Value.String())
}
