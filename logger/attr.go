package logger

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
)

var levelColors = map[slog.Level]func(string, ...any) string{
	slog.LevelDebug: color.WhiteString,
	slog.LevelInfo:  color.BlueString,
	slog.LevelWarn:  color.YellowString,
	slog.LevelError: color.RedString,
}

// ColorizeLevel paints the level of a record in a terminal-friendly color.
// Use as or in a [log/slog.HandlerOptions.ReplaceAttr].
func ColorizeLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.LevelKey {
		return a
	}

	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}

	paint, ok := levelColors[level]
	if !ok {
		paint = color.MagentaString
	}

	return slog.String(a.Key, paint("%s", level.String()))
}

// DeleteLevelAttr drops the level of a record.
func DeleteLevelAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		return slog.Attr{}
	}

	return a
}

// TruncSourceAttr shortens the source of a record to the file's directory, name and line,
// e.g.:
//
//	/home/dlk/relay/auth/jwks.go:42 => auth/jwks.go:42
func TruncSourceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.SourceKey {
		return a
	}

	src, ok := a.Value.Any().(*slog.Source)
	if !ok || src == nil {
		return a
	}

	dir, file := filepath.Split(src.File)
	return slog.String(a.Key, fmt.Sprintf("%s:%d", filepath.Join(filepath.Base(dir), file), src.Line))
}
