package models

import (
	"time"

	"winecompare/matching"
	"winecompare/wine"
)

// SourceSummary итоги разбора одного загруженного файла
type SourceSummary struct {
	File     string               `json:"file"`
	Format   string               `json:"format"`
	Encoding string               `json:"encoding"`
	Stats    wine.ProjectionStats `json:"stats"`
}

// CompareResponse ответ на сверку журнала погреба с эталонной ведомостью
type CompareResponse struct {
	RunID      string    `json:"run_id"`
	CreatedAt  time.Time `json:"created_at"`
	DurationMS int64     `json:"duration_ms"`
	Preset     string    `json:"preset"`
	Threshold  float64   `json:"threshold"`

	Cellar    SourceSummary `json:"cellar"`
	Reference SourceSummary `json:"reference"`

	TotalEvaluated int `json:"total_evaluated"`
	MatchedExact   int `json:"matched_exact"`
	MatchedFuzzy   int `json:"matched_fuzzy"`
	MissingCount   int `json:"missing_count"`

	Missing []matching.MissingRecord `json:"missing"`
}

// RunRecord одна завершенная сверка в истории
type RunRecord struct {
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

// RunsListResponse ответ со списком последних сверок
type RunsListResponse struct {
	Runs  []RunRecord `json:"runs"`
	Total int         `json:"total"`
	Limit int         `json:"limit"`
}

// PresetsResponse ответ со встроенными пресетами политики сопоставления
type PresetsResponse struct {
	Presets []matching.Policy `json:"presets"`
	Default string            `json:"default"`
}
