package wine

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// VolumeUnit — единица измерения объема, заявленная схемой источника.
// Используется, когда само значение единицу не называет.
type VolumeUnit int

const (
	// UnitCentiliters — значение уже в сантилитрах
	UnitCentiliters VolumeUnit = iota
	// UnitLiters — значение в литрах (журнал погреба хранит "0.75")
	UnitLiters
	// UnitMilliliters — значение в миллилитрах
	UnitMilliliters
)

var volumeNumberRe = regexp.MustCompile(`[0-9]+(?:[.,][0-9]+)?`)

// ParseVolumeCL разбирает объем бутылки и приводит его к сантилитрам.
// Возвращает объем и признак чистого разбора: false означает, что
// непустое значение не разобралось и подставлен DefaultVolumeCL.
//
// Десятичным разделителем может быть точка или запятая. Единица
// определяется по содержимому строки ("ml" раньше "cl" раньше "l",
// иначе "75 cl" превратился бы в литры), при отсутствии подсказок
// берется единица схемы.
func ParseVolumeCL(raw string, unit VolumeUnit) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return DefaultVolumeCL, true
	}

	numToken := volumeNumberRe.FindString(s)
	if numToken == "" {
		return DefaultVolumeCL, false
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(numToken, ",", "."), 64)
	if err != nil {
		return DefaultVolumeCL, false
	}

	var cl float64
	switch {
	case strings.Contains(s, "ml"):
		cl = value / 10
	case strings.Contains(s, "cl"):
		cl = value
	case strings.Contains(s, "l"):
		// ловит и "l", и "litre", и "litres"
		cl = value * 100
	case unit == UnitLiters:
		cl = value * 100
	case unit == UnitMilliliters:
		cl = value / 10
	default:
		cl = value
	}

	rounded := int(math.Round(cl))
	if rounded <= 0 {
		return DefaultVolumeCL, false
	}

	return rounded, true
}
