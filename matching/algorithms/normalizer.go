package algorithms

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks раскладывает строку в NFD и удаляет комбинирующие знаки,
// затем собирает обратно в NFC. Это стандартный способ снять диакритику:
// "Château" -> "Chateau", "Gevrey-Chambertin" остается без изменений.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// TextNormalizer приводит название вина к канонической форме для сравнения.
// Результат нормализации нигде не показывается пользователю, он служит
// только ключом сопоставления.
type TextNormalizer struct{}

// NewTextNormalizer создает новый нормализатор текста
func NewTextNormalizer() *TextNormalizer {
	return &TextNormalizer{}
}

// Normalize выполняет полную нормализацию названия.
// Шаги строго в таком порядке:
//  1. пустой вход -> пустая строка
//  2. снятие диакритики (NFD + удаление комбинирующих знаков)
//  3. приведение к нижнему регистру
//  4. каждый символ вне [a-z0-9] -> пробел; лигатуры ("œ") и нелатинские
//     буквы нормализацию не переживают
//  5. схлопывание последовательностей пробелов в один
//  6. обрезка краевых пробелов
//
// Функция детерминированная, тотальная и идемпотентная:
// Normalize(Normalize(s)) == Normalize(s) для любого s.
func (tn *TextNormalizer) Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	folded, _, err := transform.String(stripMarks, raw)
	if err != nil {
		// transform.String на корректном UTF-8 не возвращает ошибок,
		// но на битом вводе откатываемся к исходной строке
		folded = raw
	}

	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
