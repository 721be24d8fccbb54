package logger

import (
	"log/slog"
	"os"
)

// NewTestLogger создает логгер для тестов.
// По умолчанию уровень WARN, переменная TEST_DEBUG включает отладочный вывод.
func NewTestLogger() *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("TEST_DEBUG") != "" {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
