package sl

import (
	"io"
	"log/slog"
)

// New создает логгер для окружения env: local пишет текст с уровнем debug,
// dev пишет JSON с уровнем debug, prod и неизвестные окружения пишут JSON с уровнем info.
func New(env string, w io.Writer) *slog.Logger {
	switch env {
	case "local":
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case "dev":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}
