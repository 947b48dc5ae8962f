package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// InitHistorySchema создает таблицы истории сверок
func InitHistorySchema(db *sql.DB) error {
	schema := `
	-- Таблица завершенных сверок
	CREATE TABLE IF NOT EXISTS comparison_runs (
		id TEXT PRIMARY KEY,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		cellar_file TEXT NOT NULL,
		reference_file TEXT NOT NULL,
		total_cellar INTEGER NOT NULL,
		total_reference INTEGER NOT NULL,
		matched_exact INTEGER NOT NULL,
		matched_fuzzy INTEGER NOT NULL,
		missing INTEGER NOT NULL,
		skipped_rows INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		preset TEXT NOT NULL,
		threshold REAL NOT NULL
	);

	-- Индексы для выборки последних сверок
	CREATE INDEX IF NOT EXISTS idx_comparison_runs_created_at ON comparison_runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_comparison_runs_preset ON comparison_runs(preset);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create history schema: %w", err)
	}

	return nil
}

// CreateHistoryDatabase создает или открывает БД истории сверок
func CreateHistoryDatabase(path string) (*sql.DB, error) {
	// Создаем директорию, если её нет
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history database directory: %w", err)
	}

	// Открываем БД
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// Настройка connection pooling
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Проверяем подключение
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	// Инициализируем схему
	if err := InitHistorySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return db, nil
}
