package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"winecompare/matching"
)

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	var errors []string

	// Валидация порта
	if c.Port == "" {
		errors = append(errors, "port is required")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid port: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("port must be between 1 and 65535, got %d", port))
		}
	}

	// Валидация лимита загрузки
	if c.MaxUploadBytes < 1 {
		errors = append(errors, "max upload size must be at least 1 byte")
	}

	// Валидация хранения результатов
	if c.ResultsTTL < time.Second {
		errors = append(errors, "results TTL must be at least 1 second")
	}
	if c.ResultsCleanupInterval < time.Second {
		errors = append(errors, "results cleanup interval must be at least 1 second")
	}

	// Валидация истории
	if c.HistoryDatabasePath == "" {
		errors = append(errors, "history database path is required")
	}
	if c.HistoryLimit < 1 {
		errors = append(errors, "history limit must be at least 1")
	}

	// Валидация уровня логирования
	validLogLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	if c.LogLevel != "" {
		valid := false
		logLevelUpper := strings.ToUpper(c.LogLevel)
		for _, level := range validLogLevels {
			if logLevelUpper == level {
				valid = true
				break
			}
		}
		if !valid {
			errors = append(errors, fmt.Sprintf("invalid log level: %s (valid: %s)",
				c.LogLevel, strings.Join(validLogLevels, ", ")))
		}
	}

	// Валидация пресета сопоставления
	if _, err := matching.PolicyByName(c.MatchPreset); err != nil {
		errors = append(errors, fmt.Sprintf("invalid match preset: %s", c.MatchPreset))
	}
	if c.MatchThreshold > 100 {
		errors = append(errors, fmt.Sprintf("match threshold must not exceed 100, got %v", c.MatchThreshold))
	}

	// Валидация поиска LWIN
	if c.Lookup != nil && c.Lookup.Enabled {
		if c.Lookup.BaseURL == "" {
			errors = append(errors, "lookup base URL is required when lookup is enabled")
		}
		if c.Lookup.Timeout < time.Second {
			errors = append(errors, "lookup timeout must be at least 1 second")
		}
		if c.Lookup.RateLimitPerSec < 1 {
			errors = append(errors, "lookup rate limit must be at least 1 request per second")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// MatchPolicy собирает политику сопоставления из пресета
// и переопределений конфигурации
func (c *Config) MatchPolicy() (matching.Policy, error) {
	policy, err := matching.PolicyByName(c.MatchPreset)
	if err != nil {
		return matching.Policy{}, err
	}
	if c.MatchThreshold >= 0 {
		policy.Threshold = c.MatchThreshold
		if policy.EarlyExitScore < policy.Threshold {
			policy.EarlyExitScore = policy.Threshold
		}
	}
	return policy, nil
}
