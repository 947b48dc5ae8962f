package matching

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportFormat формат выгрузки отчета
type ExportFormat string

const (
	FormatJSON  ExportFormat = "json"
	FormatCSV   ExportFormat = "csv"
	FormatExcel ExportFormat = "xlsx"
)

// missingSheetName имя листа в Excel-выгрузке
const missingSheetName = "Vins Manquants"

// exportHeaders заголовки колонок выгрузки, по-французски как в отчете
var exportHeaders = []string{
	"Ligne", "Producteur/Vin", "Millésime", "Contenance (cl)",
	"LWIN7", "Statut", "Raison", "Score",
}

// DefaultFilename возвращает имя файла выгрузки с меткой времени,
// например vins_manquants_20250812_143005.xlsx
func DefaultFilename(format ExportFormat) string {
	return fmt.Sprintf("vins_manquants_%s.%s", time.Now().Format("20060102_150405"), format)
}

// ContentType возвращает MIME-тип формата выгрузки
func ContentType(format ExportFormat) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json; charset=utf-8"
	}
}

// exportRow строковое представление одной отсутствующей записи
func exportRow(m MissingRecord) []string {
	score := ""
	if m.BestScore != nil {
		score = fmt.Sprintf("%.0f", *m.BestScore)
	}
	return []string{
		fmt.Sprintf("%d", m.SourceRow),
		m.DisplayName,
		fmt.Sprintf("%v", m.Vintage),
		fmt.Sprintf("%d", m.VolumeCL),
		m.LWIN7,
		"MANQUANT",
		m.Reason,
		score,
	}
}

// ExportMissingCSV выгружает отсутствующие записи отчета в CSV.
// Разделитель ';' и BOM в начале нужны, чтобы французский Excel
// открывал файл с правильными колонками и акцентами.
func ExportMissingCSV(w io.Writer, report *Report) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	writer.Comma = ';'
	defer writer.Flush()

	if err := writer.Write(exportHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for _, m := range report.Missing {
		if err := writer.Write(exportRow(m)); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportMissingJSON выгружает отсутствующие записи отчета в JSON
func ExportMissingJSON(w io.Writer, report *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	result := map[string]interface{}{
		"exported_at": time.Now().Format(time.RFC3339),
		"preset":      report.Preset,
		"threshold":   report.Threshold,
		"total":       report.MissingCount,
		"missing":     report.Missing,
	}

	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// ExportMissingExcel выгружает отсутствующие записи отчета в Excel
func ExportMissingExcel(w io.Writer, report *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(missingSheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	// Стиль заголовков
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#722F37"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(missingSheetName, cell, header)
		f.SetCellStyle(missingSheetName, cell, cell, headerStyle)
	}

	for rowIdx, m := range report.Missing {
		row := rowIdx + 2
		f.SetCellValue(missingSheetName, fmt.Sprintf("A%d", row), m.SourceRow)
		f.SetCellValue(missingSheetName, fmt.Sprintf("B%d", row), m.DisplayName)
		f.SetCellValue(missingSheetName, fmt.Sprintf("C%d", row), fmt.Sprintf("%v", m.Vintage))
		f.SetCellValue(missingSheetName, fmt.Sprintf("D%d", row), m.VolumeCL)
		f.SetCellValue(missingSheetName, fmt.Sprintf("E%d", row), m.LWIN7)
		f.SetCellValue(missingSheetName, fmt.Sprintf("F%d", row), "MANQUANT")
		f.SetCellValue(missingSheetName, fmt.Sprintf("G%d", row), m.Reason)
		if m.BestScore != nil {
			f.SetCellValue(missingSheetName, fmt.Sprintf("H%d", row), *m.BestScore)
		}
	}

	// Ширина колонок: название и причина заметно шире остальных
	widths := []float64{8, 45, 12, 14, 12, 12, 50, 8}
	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(missingSheetName, col, col, width)
	}

	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}

	return nil
}

// ParseExportFormat разбирает формат выгрузки из строки запроса.
// Пустая строка означает Excel, как в исходном интерфейсе выгрузки.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch s {
	case "", "xlsx", "excel":
		return FormatExcel, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("неподдерживаемый формат выгрузки: %q", s)
	}
}
