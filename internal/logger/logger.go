// Package logger настраивает структурированное логирование через log/slog
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config хранит настройки логгера
type Config struct {
	Level  slog.Level
	Format string    // "text" или "json"
	Output io.Writer // По умолчанию os.Stderr
}

// NewLogger создает настроенный slog.Logger
func NewLogger(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.Level <= slog.LevelDebug,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler)
}

// ParseLevel разбирает имя уровня логирования.
// Допустимые значения: DEBUG, INFO, WARN, WARNING, ERROR. Иначе возвращается fallback.
func ParseLevel(name string, fallback slog.Level) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return fallback
	}
}

// DefaultConfig возвращает конфигурацию по умолчанию.
// Уровень берется из configured, переменная CHAPTERPLAY_LOG_LEVEL имеет приоритет.
func DefaultConfig(configured string) Config {
	level := ParseLevel(configured, slog.LevelInfo)
	if env := os.Getenv("CHAPTERPLAY_LOG_LEVEL"); env != "" {
		level = ParseLevel(env, level)
	}

	return Config{
		Level:  level,
		Format: "text",
	}
}
