package wine

import (
	"fmt"
)

// Schema — декларативное описание раскладки колонок источника.
// Позиции колонок задаются конфигурацией и валидируются один раз
// при загрузке: дрейф схемы должен падать сразу с понятной ошибкой,
// а не молча сдвигать поля.
type Schema struct {
	// Name — имя схемы для диагностики ("livre_de_cave", "google_sheet")
	Name string `json:"name"`

	// NameColumns — колонки, из которых склеивается название.
	// Непустые значения соединяются одиночным пробелом в порядке списка.
	NameColumns []int `json:"name_columns"`

	// VintageColumn — колонка года урожая, -1 если колонки нет
	VintageColumn int `json:"vintage_column"`

	// VolumeColumn — колонка объема, -1 если колонки нет
	VolumeColumn int `json:"volume_column"`

	// VolumeUnit — единица объема, когда значение ее не называет
	VolumeUnit VolumeUnit `json:"volume_unit"`

	// LWINColumn — колонка идентификатора LWIN, -1 если колонки нет
	LWINColumn int `json:"lwin_column"`

	// HeaderRows — число строк заголовка перед данными.
	// Первая строка данных получает SourceRow = HeaderRows + 1.
	HeaderRows int `json:"header_rows"`
}

// CellarBookSchema — раскладка выгрузки "Livre de Cave" из
// программы сомелье: название разнесено по четырем колонкам,
// объем хранится в литрах.
func CellarBookSchema() Schema {
	return Schema{
		Name:          "livre_de_cave",
		NameColumns:   []int{2, 4, 5, 6},
		VintageColumn: 7,
		VolumeColumn:  8,
		VolumeUnit:    UnitLiters,
		LWINColumn:    10,
		HeaderRows:    1,
	}
}

// ReferenceSheetSchema — раскладка эталонной таблицы:
// название одной колонкой, объем в сантилитрах.
func ReferenceSheetSchema() Schema {
	return Schema{
		Name:          "google_sheet",
		NameColumns:   []int{0},
		VintageColumn: 2,
		VolumeColumn:  3,
		VolumeUnit:    UnitCentiliters,
		LWINColumn:    6,
		HeaderRows:    1,
	}
}

// Validate проверяет согласованность схемы. Ошибка здесь фатальна
// для всего вызова сверки и возвращается до обработки первой строки.
func (s Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("schema: имя схемы не задано")
	}
	if len(s.NameColumns) == 0 {
		return fmt.Errorf("schema %s: не задано ни одной колонки названия", s.Name)
	}
	for i, col := range s.NameColumns {
		if col < 0 {
			return fmt.Errorf("schema %s: колонка названия №%d отрицательная (%d)", s.Name, i+1, col)
		}
	}
	if s.VintageColumn < -1 {
		return fmt.Errorf("schema %s: некорректная колонка года (%d)", s.Name, s.VintageColumn)
	}
	if s.VolumeColumn < -1 {
		return fmt.Errorf("schema %s: некорректная колонка объема (%d)", s.Name, s.VolumeColumn)
	}
	if s.LWINColumn < -1 {
		return fmt.Errorf("schema %s: некорректная колонка LWIN (%d)", s.Name, s.LWINColumn)
	}
	if s.HeaderRows < 0 {
		return fmt.Errorf("schema %s: отрицательное число строк заголовка (%d)", s.Name, s.HeaderRows)
	}

	switch s.VolumeUnit {
	case UnitCentiliters, UnitLiters, UnitMilliliters:
	default:
		return fmt.Errorf("schema %s: неизвестная единица объема (%d)", s.Name, s.VolumeUnit)
	}

	return nil
}

// cell возвращает значение колонки или пустую строку, если строка короче.
// Короткие строки — норма для хвостовых колонок выгрузок.
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
