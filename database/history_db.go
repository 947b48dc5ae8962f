package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// HistoryDB обертка для работы с БД истории сверок
type HistoryDB struct {
	conn *sql.DB
}

// NewHistoryDB создает новое подключение к БД истории
func NewHistoryDB(path string) (*HistoryDB, error) {
	db, err := CreateHistoryDatabase(path)
	if err != nil {
		return nil, err
	}

	return &HistoryDB{conn: db}, nil
}

// Close закрывает подключение к БД истории
func (db *HistoryDB) Close() error {
	return db.conn.Close()
}

// GetConnection возвращает указатель на sql.DB для прямого доступа
func (db *HistoryDB) GetConnection() *sql.DB {
	return db.conn
}

// ComparisonRun итоговая запись одной сверки
type ComparisonRun struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	CellarFile     string    `json:"cellar_file"`
	ReferenceFile  string    `json:"reference_file"`
	TotalCellar    int       `json:"total_cellar"`
	TotalReference int       `json:"total_reference"`
	MatchedExact   int       `json:"matched_exact"`
	MatchedFuzzy   int       `json:"matched_fuzzy"`
	Missing        int       `json:"missing"`
	SkippedRows    int       `json:"skipped_rows"`
	DurationMS     int64     `json:"duration_ms"`
	Preset         string    `json:"preset"`
	Threshold      float64   `json:"threshold"`
}

// SaveRun сохраняет итоги сверки
func (db *HistoryDB) SaveRun(run *ComparisonRun) error {
	if run.ID == "" {
		return fmt.Errorf("run id is required")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO comparison_runs (
			id, created_at, cellar_file, reference_file,
			total_cellar, total_reference, matched_exact, matched_fuzzy,
			missing, skipped_rows, duration_ms, preset, threshold
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.conn.Exec(query,
		run.ID,
		run.CreatedAt,
		run.CellarFile,
		run.ReferenceFile,
		run.TotalCellar,
		run.TotalReference,
		run.MatchedExact,
		run.MatchedFuzzy,
		run.Missing,
		run.SkippedRows,
		run.DurationMS,
		run.Preset,
		run.Threshold,
	)
	if err != nil {
		return fmt.Errorf("failed to save comparison run: %w", err)
	}

	return nil
}

// GetRun получает сверку по ID
func (db *HistoryDB) GetRun(id string) (*ComparisonRun, error) {
	query := `
		SELECT id, created_at, cellar_file, reference_file,
		       total_cellar, total_reference, matched_exact, matched_fuzzy,
		       missing, skipped_rows, duration_ms, preset, threshold
		FROM comparison_runs
		WHERE id = ?
	`

	run, err := scanRun(db.conn.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("comparison run not found")
		}
		return nil, fmt.Errorf("failed to get comparison run: %w", err)
	}

	return run, nil
}

// ListRuns возвращает последние сверки, новые первыми
func (db *HistoryDB) ListRuns(limit int) ([]*ComparisonRun, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, created_at, cellar_file, reference_file,
		       total_cellar, total_reference, matched_exact, matched_fuzzy,
		       missing, skipped_rows, duration_ms, preset, threshold
		FROM comparison_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := db.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list comparison runs: %w", err)
	}
	defer rows.Close()

	runs := make([]*ComparisonRun, 0, limit)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comparison run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comparison runs: %w", err)
	}

	return runs, nil
}

// CountRuns возвращает общее число сохраненных сверок
func (db *HistoryDB) CountRuns() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM comparison_runs").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count comparison runs: %w", err)
	}
	return count, nil
}

// rowScanner покрывает и *sql.Row, и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*ComparisonRun, error) {
	var run ComparisonRun
	err := row.Scan(
		&run.ID,
		&run.CreatedAt,
		&run.CellarFile,
		&run.ReferenceFile,
		&run.TotalCellar,
		&run.TotalReference,
		&run.MatchedExact,
		&run.MatchedFuzzy,
		&run.Missing,
		&run.SkippedRows,
		&run.DurationMS,
		&run.Preset,
		&run.Threshold,
	)
	if err != nil {
		return nil, err
	}
	return &run, nil
}
