package wine

import (
	"fmt"
	"log/slog"
	"strings"

	"winecompare/matching/algorithms"
)

// SkipReason объясняет, почему строка не стала канонической записью
type SkipReason int

const (
	// SkipNone — строка не пропущена
	SkipNone SkipReason = iota
	// SkipEmptyName — название пусто после склейки и нормализации
	SkipEmptyName
	// SkipAccessory — строка классифицирована как аксессуар
	SkipAccessory
)

// ProjectionStats — счетчики одного прохода проекции.
// Пропуски считаются отдельно и от совпавших, и от отсутствующих.
type ProjectionStats struct {
	TotalRows        int `json:"total_rows"`
	Projected        int `json:"projected"`
	SkippedEmptyName int `json:"skipped_empty_name"`
	SkippedAccessory int `json:"skipped_accessory"`
	MalformedFields  int `json:"malformed_fields"`
	FailedRows       int `json:"failed_rows"`
	NoLWIN           int `json:"no_lwin"`
}

// ProjectorOptions — настройки проекции поверх схемы.
// Нулевое значение дает поведение продуктивной версии.
type ProjectorOptions struct {
	// AccessoryKeywords — ключевые слова фильтра аксессуаров,
	// пустой список = список по умолчанию
	AccessoryKeywords []string

	// VintageBounds — границы года урожая, нулевые = границы по умолчанию
	VintageBounds VintageBounds

	// KeyVolumeFormat — формат объема в ключе LWIN16
	KeyVolumeFormat KeyVolumeFormat
}

// Projector приводит сырые строки одного источника к каноническим
// записям: склеивает название, нормализует его, разбирает год и
// объем, восстанавливает LWIN и строит точный ключ. Чистая функция
// строки; никакого состояния между вызовами не копится.
type Projector struct {
	schema      Schema
	normalizer  *algorithms.TextNormalizer
	accessories *AccessoryFilter
	bounds      VintageBounds
	keyFormat   KeyVolumeFormat
}

// NewProjector создает проектор для схемы. Невалидная схема — это
// ошибка конфигурации: она возвращается сразу, до обработки строк.
func NewProjector(schema Schema, opts ProjectorOptions) (*Projector, error) {
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("невалидная схема источника: %w", err)
	}

	bounds := opts.VintageBounds
	if bounds.Min == 0 && bounds.Max == 0 {
		bounds = DefaultVintageBounds()
	}
	if bounds.Min > bounds.Max {
		return nil, fmt.Errorf("schema %s: границы года перепутаны (%d > %d)",
			schema.Name, bounds.Min, bounds.Max)
	}

	return &Projector{
		schema:      schema,
		normalizer:  algorithms.NewTextNormalizer(),
		accessories: NewAccessoryFilter(opts.AccessoryKeywords),
		bounds:      bounds,
		keyFormat:   opts.KeyVolumeFormat,
	}, nil
}

// Schema возвращает схему проектора
func (p *Projector) Schema() Schema {
	return p.schema
}

// Project проецирует одну строку. Возвращает запись, причину
// пропуска и число полей, подмененных значением по умолчанию
// из-за ошибки разбора.
func (p *Projector) Project(row []string, sourceRow int) (Record, SkipReason, int) {
	parts := make([]string, 0, len(p.schema.NameColumns))
	for _, col := range p.schema.NameColumns {
		if v := strings.TrimSpace(cell(row, col)); v != "" {
			parts = append(parts, v)
		}
	}
	displayName := strings.Join(parts, " ")

	if displayName == "" {
		return Record{}, SkipEmptyName, 0
	}
	if p.accessories.IsAccessory(displayName) {
		return Record{}, SkipAccessory, 0
	}

	normalized := p.normalizer.Normalize(displayName)
	if normalized == "" {
		// Название из одной пунктуации: для сравнения бесполезно
		return Record{}, SkipEmptyName, 0
	}

	malformed := 0
	vintage, okVintage := ParseVintage(cell(row, p.schema.VintageColumn), p.bounds)
	if !okVintage {
		malformed++
	}
	volume, okVolume := ParseVolumeCL(cell(row, p.schema.VolumeColumn), p.schema.VolumeUnit)
	if !okVolume {
		malformed++
	}

	lwin := ExtractLWIN7(cell(row, p.schema.LWINColumn))

	return Record{
		DisplayName:    displayName,
		NormalizedName: normalized,
		Vintage:        vintage,
		VolumeCL:       volume,
		LWIN7:          lwin,
		ExactKey:       BuildExactKey(lwin, vintage, volume, p.keyFormat),
		SourceRow:      sourceRow,
	}, SkipNone, malformed
}

// ProjectAll проецирует всю таблицу, пропуская строки заголовка.
// Сбой на одной строке изолируется: строка считается FailedRows,
// остальные обрабатываются дальше.
func (p *Projector) ProjectAll(rows [][]string) ([]Record, ProjectionStats) {
	stats := ProjectionStats{}
	records := make([]Record, 0, len(rows))

	for i, row := range rows {
		if i < p.schema.HeaderRows {
			continue
		}
		stats.TotalRows++

		sourceRow := i + 1
		record, reason, malformed, ok := p.projectSafe(row, sourceRow)
		if !ok {
			stats.FailedRows++
			continue
		}

		stats.MalformedFields += malformed
		switch reason {
		case SkipEmptyName:
			stats.SkippedEmptyName++
		case SkipAccessory:
			stats.SkippedAccessory++
		default:
			if !record.HasLWIN() {
				stats.NoLWIN++
			}
			records = append(records, record)
			stats.Projected++
		}
	}

	return records, stats
}

// projectSafe изолирует панику при обработке одной строки:
// ошибка строки никогда не роняет всю сверку
func (p *Projector) projectSafe(row []string, sourceRow int) (record Record, reason SkipReason, malformed int, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Сбой проекции строки",
				"schema", p.schema.Name,
				"source_row", sourceRow,
				"panic", fmt.Sprint(r),
			)
			ok = false
		}
	}()

	record, reason, malformed = p.Project(row, sourceRow)
	return record, reason, malformed, true
}
