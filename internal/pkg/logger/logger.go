package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config — настройки логгера. Переменные: DASHBOARD_LOG_LEVEL, DASHBOARD_LOG_FILE, DASHBOARD_LOG_FORMAT.
type Config struct {
	Level string `envconfig:"LEVEL" default:"info"`
	// File — файл логов в дополнение к stderr. Пусто — только stderr.
	File   string `envconfig:"FILE" default:"app.log"`
	Format string `envconfig:"FORMAT" default:"text"` // text | json
}

// logWriter открывает файл логов и возвращает writer в файл + stderr (и в файл, и в консоль).
// При ошибке открытия файла возвращает только stderr.
func logWriter(file string) io.Writer {
	if file == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return os.Stderr
	}
	return io.MultiWriter(f, os.Stderr)
}

// New возвращает логгер по конфигу.
func New(cfg Config) *slog.Logger {
	return NewWriter(logWriter(cfg.File), cfg)
}

// NewWriter — логгер с выводом в w (для тестов и утилит).
func NewWriter(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel разбирает уровень (debug, info, warn, error). Неизвестный уровень — info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
