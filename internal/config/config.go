package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config конфигурация сервера сверки
type Config struct {
	// Сервер
	Port string `json:"port"`

	// Загрузка файлов
	MaxUploadBytes int64 `json:"max_upload_bytes"`

	// Хранение результатов сверки для выгрузки
	ResultsTTL             time.Duration `json:"results_ttl"`
	ResultsCleanupInterval time.Duration `json:"results_cleanup_interval"`

	// История запусков
	HistoryDatabasePath string `json:"history_database_path"`
	HistoryLimit        int    `json:"history_limit"`

	// Логирование
	LogLevel string `json:"log_level"`

	// Сопоставление
	MatchPreset string `json:"match_preset"`
	// MatchThreshold переопределяет порог пресета;
	// отрицательное значение оставляет порог пресета
	MatchThreshold float64 `json:"match_threshold"`

	// Поиск кодов LWIN
	Lookup *LookupConfig `json:"lookup"`
}

// LookupConfig конфигурация внешнего поиска кодов LWIN
type LookupConfig struct {
	Enabled         bool          `json:"enabled"`
	Timeout         time.Duration `json:"timeout"`
	CacheTTL        time.Duration `json:"cache_ttl"`
	CacheEnabled    bool          `json:"cache_enabled"`
	RateLimitPerSec int           `json:"rate_limit_per_sec"`
	BaseURL         string        `json:"base_url"`
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	config := &Config{
		// Сервер
		Port: getEnv("SERVER_PORT", "5000"),

		// Загрузка файлов
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 16)) * 1024 * 1024,

		// Результаты
		ResultsTTL:             getEnvDuration("RESULTS_TTL", 1*time.Hour),
		ResultsCleanupInterval: getEnvDuration("RESULTS_CLEANUP_INTERVAL", 10*time.Minute),

		// История
		HistoryDatabasePath: getEnv("HISTORY_DATABASE_PATH", "runs.db"),
		HistoryLimit:        getEnvInt("HISTORY_LIMIT", 50),

		// Логирование
		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		// Сопоставление
		MatchPreset:    getEnv("MATCH_PRESET", "default"),
		MatchThreshold: getEnvFloat("MATCH_THRESHOLD", -1),

		// Поиск LWIN
		Lookup: LoadLookupConfig(),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// LoadLookupConfig загружает конфигурацию поиска кодов LWIN.
// Поиск выключен, пока его не включили явно: сверка полностью
// работоспособна без внешних запросов.
func LoadLookupConfig() *LookupConfig {
	return &LookupConfig{
		Enabled:         getEnv("LWIN_LOOKUP_ENABLED", "false") == "true",
		Timeout:         getEnvDuration("LWIN_LOOKUP_TIMEOUT", 5*time.Second),
		CacheTTL:        getEnvDuration("LWIN_LOOKUP_CACHE_TTL", 24*time.Hour),
		CacheEnabled:    getEnv("LWIN_LOOKUP_CACHE_ENABLED", "true") == "true",
		RateLimitPerSec: getEnvInt("LWIN_LOOKUP_RATE_LIMIT_PER_SEC", 1),
		BaseURL:         getEnv("LWIN_LOOKUP_BASE_URL", "https://html.duckduckgo.com/html"),
	}
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat получает переменную окружения как float64 или возвращает значение по умолчанию
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как Duration или возвращает значение по умолчанию
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
