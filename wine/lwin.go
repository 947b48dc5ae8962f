package wine

import (
	"regexp"
	"strings"
)

var (
	lwinPrefixRe = regexp.MustCompile(`(?i)^lwin`)
	digitRunRe   = regexp.MustCompile(`[0-9]{7,}`)
	nonDigitRe   = regexp.MustCompile(`[^0-9]`)
)

// ExtractLWIN7 восстанавливает семизначный идентификатор из сырого
// значения колонки. Значения встречаются в самых разных формах:
// "1012361", "LWIN1012361", "1012361.0", "LWIN 101236".
//
// Правила:
//  1. ведущий префикс "LWIN" (любой регистр) отбрасывается
//  2. первая последовательность из 7 и более цифр -> первые 7 из нее
//  3. иначе собираются все цифры строки: от 1 до 6 -> дополнение
//     нулями слева до 7
//  4. иначе идентификатор не восстановим, возвращается пустая строка
func ExtractLWIN7(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = strings.TrimSpace(lwinPrefixRe.ReplaceAllString(s, ""))
	if s == "" {
		return ""
	}

	if run := digitRunRe.FindString(s); run != "" {
		return run[:7]
	}

	digits := nonDigitRe.ReplaceAllString(s, "")
	if len(digits) == 0 || len(digits) > 7 {
		return ""
	}

	return strings.Repeat("0", 7-len(digits)) + digits
}
