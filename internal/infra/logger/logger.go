package logger

import (
	"io"
	"log/slog"
	"os"
)

// New настраивает логгер по окружению: dev и local пишут текстом с debug,
// остальные окружения — JSON с info для сбора логов.
func New(env string) *slog.Logger {
	return slog.New(newHandler(env, os.Stdout))
}

func newHandler(env string, w io.Writer) slog.Handler {
	switch env {
	case "dev", "local":
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
}
