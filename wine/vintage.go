package wine

import (
	"regexp"
	"strconv"
	"strings"
)

// VintageBounds задает допустимый диапазон года урожая.
// Значения вне диапазона считаются нераспознанными.
type VintageBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DefaultVintageBounds — границы продуктивной версии
func DefaultVintageBounds() VintageBounds {
	return VintageBounds{Min: 1900, Max: 2030}
}

// LegacyVintageBounds — границы ранней версии, допускают
// исторические миллезимы вроде 1855
func LegacyVintageBounds() VintageBounds {
	return VintageBounds{Min: 1800, Max: 2030}
}

var yearTokenRe = regexp.MustCompile(`\b(19[0-9]{2}|20[0-9]{2})\b`)

// ParseVintage разбирает год урожая из сырого значения колонки.
// Возвращает год и признак чистого разбора: false означает, что
// непустое значение не удалось интерпретировать и подставлен
// сентинел NoVintage.
//
// Правила:
//   - пусто или "NV" (non-vintage) -> NoVintage, это чистый разбор
//   - диапазон "2019-2020" -> берется часть до дефиса
//   - в строке ищется четырехзначный токен 19xx/20xx
//   - иначе прямой числовой разбор (включая формы вроде "2015.0")
//   - найденный год принимается только внутри границ b
func ParseVintage(raw string, b VintageBounds) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nv") {
		return NoVintage, true
	}

	if idx := strings.Index(s, "-"); idx >= 0 {
		s = strings.TrimSpace(s[:idx])
	}

	if token := yearTokenRe.FindString(s); token != "" {
		year, err := strconv.Atoi(token)
		if err == nil && year >= b.Min && year <= b.Max {
			return year, true
		}
	}

	// Excel часто отдает года как "2015.0"
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		year := int(f)
		if year >= b.Min && year <= b.Max {
			return year, true
		}
	}

	return NoVintage, false
}
