package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"winecompare/database"
	"winecompare/importer"
	"winecompare/matching"
	apperrors "winecompare/server/errors"
	"winecompare/server/models"
	"winecompare/wine"
)

// Разделители CSV двух источников. Журнал погреба выгружается
// французским Excel с ';', эталонная ведомость Google Sheets с ','
const (
	cellarDelimiter    = ';'
	referenceDelimiter = ','
)

// HistoryWriter записывает итоги завершенных сверок
type HistoryWriter interface {
	SaveRun(run *database.ComparisonRun) error
}

// CompareUpload два загруженных файла и параметры одной сверки
type CompareUpload struct {
	CellarName    string
	CellarData    []byte
	ReferenceName string
	ReferenceData []byte

	// Preset имя пресета политики; пустое = пресет из конфигурации
	Preset string

	// Threshold переопределяет порог пресета; отрицательное значение
	// оставляет порог пресета
	Threshold float64
}

// ComparisonService оркеструет сверку: чтение загруженных файлов,
// проекция строк к каноническим записям, сверка движком, удержание
// отчета для последующей выгрузки и запись итогов в историю
type ComparisonService struct {
	basePolicy matching.Policy
	engine     *matching.Engine
	store      *ResultsStore
	history    HistoryWriter

	cellarReader    *importer.Reader
	referenceReader *importer.Reader
}

// NewComparisonService создает сервис сверки.
// history может быть nil: история тогда не ведется
func NewComparisonService(basePolicy matching.Policy, store *ResultsStore, history HistoryWriter) *ComparisonService {
	return &ComparisonService{
		basePolicy:      basePolicy,
		engine:          matching.NewEngine(),
		store:           store,
		history:         history,
		cellarReader:    importer.NewReader(importer.Options{Delimiter: cellarDelimiter}),
		referenceReader: importer.NewReader(importer.Options{Delimiter: referenceDelimiter}),
	}
}

// resolvePolicy собирает политику вызова: пресет запроса поверх
// пресета конфигурации, затем переопределение порога.
// Поднятый порог тянет за собой и балл раннего выхода
func (cs *ComparisonService) resolvePolicy(preset string, threshold float64) (matching.Policy, error) {
	policy := cs.basePolicy
	if preset != "" {
		p, err := matching.PolicyByName(preset)
		if err != nil {
			return matching.Policy{}, apperrors.NewValidationError("неизвестный пресет политики: "+preset, err)
		}
		policy = p
	}

	if threshold >= 0 {
		policy.Threshold = threshold
		if policy.EarlyExitScore < threshold {
			policy.EarlyExitScore = threshold
		}
	}

	if err := policy.Validate(); err != nil {
		return matching.Policy{}, apperrors.NewValidationError("невалидные параметры сверки", err)
	}

	return policy, nil
}

// Compare выполняет полную сверку двух загруженных файлов
func (cs *ComparisonService) Compare(ctx context.Context, upload CompareUpload) (*models.CompareResponse, error) {
	if err := ValidateContext(ctx); err != nil {
		return nil, err
	}

	policy, err := cs.resolvePolicy(upload.Preset, upload.Threshold)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	slog.Info("Comparison started",
		"cellar_file", upload.CellarName,
		"reference_file", upload.ReferenceName,
		"preset", policy.Preset,
		"threshold", policy.Threshold,
	)

	cellar, err := cs.projectSource(cs.cellarReader, upload.CellarName, upload.CellarData, wine.CellarBookSchema(), policy)
	if err != nil {
		return nil, err
	}

	reference, err := cs.projectSource(cs.referenceReader, upload.ReferenceName, upload.ReferenceData, wine.ReferenceSheetSchema(), policy)
	if err != nil {
		return nil, err
	}

	report, err := cs.engine.Reconcile(cellar.records, reference.records, policy)
	if err != nil {
		return nil, apperrors.NewInternalError("сверка не выполнена", err)
	}

	duration := time.Since(start)
	runID := uuid.New().String()

	cs.store.Put(&StoredResult{
		RunID:         runID,
		Report:        report,
		CellarFile:    upload.CellarName,
		ReferenceFile: upload.ReferenceName,
	})

	cs.saveHistory(runID, upload, cellar, reference, report, duration, policy)

	slog.Info("Comparison completed",
		"run_id", runID,
		"evaluated", report.TotalEvaluated,
		"matched_exact", report.MatchedExact,
		"matched_fuzzy", report.MatchedFuzzy,
		"missing", report.MissingCount,
		"duration_ms", duration.Milliseconds(),
	)

	return &models.CompareResponse{
		RunID:          runID,
		CreatedAt:      start,
		DurationMS:     duration.Milliseconds(),
		Preset:         report.Preset,
		Threshold:      report.Threshold,
		Cellar:         cellar.summary,
		Reference:      reference.summary,
		TotalEvaluated: report.TotalEvaluated,
		MatchedExact:   report.MatchedExact,
		MatchedFuzzy:   report.MatchedFuzzy,
		MissingCount:   report.MissingCount,
		Missing:        report.Missing,
	}, nil
}

// projectedSource канонические записи одного источника плюс его сводка
type projectedSource struct {
	records []wine.Record
	summary models.SourceSummary
}

// projectSource читает один загруженный файл и проецирует его строки
func (cs *ComparisonService) projectSource(reader *importer.Reader, filename string, data []byte, schema wine.Schema, policy matching.Policy) (*projectedSource, error) {
	if len(data) == 0 {
		return nil, apperrors.NewValidationError("файл "+filename+" пуст", nil)
	}

	table, err := reader.ReadTable(filename, data)
	if err != nil {
		return nil, apperrors.NewValidationError("не удалось прочитать файл "+filename, err)
	}

	projector, err := wine.NewProjector(schema, wine.ProjectorOptions{
		AccessoryKeywords: policy.AccessoryKeywords,
		VintageBounds:     policy.VintageBounds,
		KeyVolumeFormat:   policy.KeyVolumeFormat,
	})
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось создать проектор источника", err)
	}

	records, stats := projector.ProjectAll(table.Rows)

	return &projectedSource{
		records: records,
		summary: models.SourceSummary{
			File:     filename,
			Format:   table.Format,
			Encoding: table.Encoding,
			Stats:    stats,
		},
	}, nil
}

// saveHistory записывает итоги сверки. Отказ истории не роняет сверку:
// отчет уже построен и удержан для выгрузки
func (cs *ComparisonService) saveHistory(runID string, upload CompareUpload, cellar, reference *projectedSource, report *matching.Report, duration time.Duration, policy matching.Policy) {
	if cs.history == nil {
		return
	}

	skipped := cellar.summary.Stats.SkippedEmptyName + cellar.summary.Stats.SkippedAccessory +
		reference.summary.Stats.SkippedEmptyName + reference.summary.Stats.SkippedAccessory

	run := &database.ComparisonRun{
		ID:             runID,
		CellarFile:     upload.CellarName,
		ReferenceFile:  upload.ReferenceName,
		TotalCellar:    cellar.summary.Stats.Projected,
		TotalReference: reference.summary.Stats.Projected,
		MatchedExact:   report.MatchedExact,
		MatchedFuzzy:   report.MatchedFuzzy,
		Missing:        report.MissingCount,
		SkippedRows:    skipped,
		DurationMS:     duration.Milliseconds(),
		Preset:         policy.Preset,
		Threshold:      policy.Threshold,
	}

	if err := cs.history.SaveRun(run); err != nil {
		slog.Warn("Failed to save comparison run to history",
			"run_id", runID,
			"error", err,
		)
	}
}
