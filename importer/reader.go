// Package importer читает загруженные табличные файлы (CSV и Excel)
// в сырые строки для проекции. Кодировка CSV определяется автоматически:
// журналы погреба приходят из французских Excel в latin-1/cp1252
// так же часто, как в UTF-8.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Форматы исходного файла
const (
	FormatCSV   = "csv"
	FormatExcel = "xlsx"
)

// Table сырые строки одного загруженного файла
type Table struct {
	// Rows строки таблицы, включая заголовок
	Rows [][]string

	// Encoding определенная кодировка исходного файла
	Encoding string

	// Format формат исходного файла (csv или xlsx)
	Format string
}

// Options настройки чтения
type Options struct {
	// Delimiter разделитель полей CSV. Журнал погреба экспортируется
	// с ';', эталонная ведомость с ','
	Delimiter rune
}

// Reader читает табличные файлы в сырые строки
type Reader struct {
	opts Options
}

// NewReader создает читатель таблиц
func NewReader(opts Options) *Reader {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	return &Reader{opts: opts}
}

// ReadTable читает файл, выбирая разбор по расширению имени.
// Устаревший бинарный .xls не поддерживается: нужен явный отказ
// вместо нечитаемых строк.
func (r *Reader) ReadTable(filename string, data []byte) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return r.ReadCSV(data)
	case ".xlsx", ".xlsm":
		return r.ReadExcel(data)
	default:
		return nil, fmt.Errorf("неподдерживаемый формат файла: %s", filepath.Ext(filename))
	}
}

// ReadCSV разбирает CSV с автоопределением кодировки.
// Ряды могут быть рваными: короткие строки дополняет проекция.
func (r *Reader) ReadCSV(data []byte) (*Table, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("пустой файл")
	}

	converted, detected := detectAndConvertEncoding(data)

	reader := csv.NewReader(bytes.NewReader(converted))
	reader.Comma = r.opts.Delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	return &Table{Rows: rows, Encoding: detected, Format: FormatCSV}, nil
}

// ReadExcel разбирает книгу Excel: берется первый лист целиком
func (r *Reader) ReadExcel(data []byte) (*Table, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("пустой файл")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("книга Excel без листов")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return &Table{Rows: rows, Encoding: "utf-8", Format: FormatExcel}, nil
}

// detectAndConvertEncoding приводит данные к UTF-8 и сообщает,
// какая кодировка была определена. Порядок попыток повторяет
// исторический: utf-8, затем cp1252, затем latin-1.
func detectAndConvertEncoding(data []byte) ([]byte, string) {
	// BOM однозначно указывает на UTF-8
	if bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		return data[3:], "utf-8-sig"
	}

	if utf8.Valid(data) {
		return data, "utf-8"
	}

	// cp1252 покрывает французские акценты и типографику Windows,
	// но содержит неопределенные байты, дающие символ замены
	decoder := charmap.Windows1252.NewDecoder()
	if converted, _, err := transform.Bytes(decoder, data); err == nil && utf8.Valid(converted) {
		if !bytes.ContainsRune(converted, utf8.RuneError) {
			return converted, "cp1252"
		}
	}

	// latin-1 определен для всех байтов и не может не разобраться
	decoder = charmap.ISO8859_1.NewDecoder()
	converted, _, err := transform.Bytes(decoder, data)
	if err != nil || !utf8.Valid(converted) {
		return data, "unknown"
	}
	return converted, "latin-1"
}
