package server

import (
	"log/slog"
	"os"
	"strings"
)

var (
	// Logger глобальный структурированный логгер
	Logger *slog.Logger

	logLevel = new(slog.LevelVar)
)

func init() {
	// Инициализируем структурированный логгер в формате JSON
	opts := &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true, // Добавляем информацию об источнике (файл, строка)
	}

	// Используем JSON handler для структурированного логирования
	Logger = slog.New(slog.NewJSONHandler(os.Stdout, opts))
	slog.SetDefault(Logger)
}

// SetLogLevel переключает уровень логирования по имени из конфигурации
func SetLogLevel(level string) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		logLevel.Set(slog.LevelDebug)
	case "WARN":
		logLevel.Set(slog.LevelWarn)
	case "ERROR":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
	}
}
