package algorithms

import (
	"sort"
	"strings"
)

// Scorer предоставляет метрики приблизительного сходства названий.
// Все метрики возвращают процент в диапазоне [0, 100]; вход ожидается
// уже нормализованным (см. TextNormalizer), сами метрики регистр не трогают.
type Scorer struct{}

// NewScorer создает новый экземпляр метрик сходства
func NewScorer() *Scorer {
	return &Scorer{}
}

// LevenshteinDistance вычисляет редакционное расстояние между строками.
// Оптимизированный вариант с одним рабочим массивом вместо полной матрицы.
func (sc *Scorer) LevenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	col := make([]int, len(r1)+1)
	for i := 1; i <= len(r1); i++ {
		col[i] = i
	}

	for x := 1; x <= len(r2); x++ {
		col[0] = x
		diag := x - 1
		for y := 1; y <= len(r1); y++ {
			oldDiag := col[y]
			cost := 0
			if r1[y-1] != r2[x-1] {
				cost = 1
			}
			col[y] = min3Ratio(col[y]+1, col[y-1]+1, diag+cost)
			diag = oldDiag
		}
	}

	return col[len(r1)]
}

// Ratio вычисляет простое редакционное сходство в процентах:
// 100 * (1 - distance/maxLen). Две пустые строки считаются идентичными.
func (sc *Scorer) Ratio(s1, s2 string) float64 {
	len1 := len([]rune(s1))
	len2 := len([]rune(s2))

	if len1 == 0 && len2 == 0 {
		return 100.0
	}
	if len1 == 0 || len2 == 0 {
		return 0.0
	}

	maxLen := len1
	if len2 > maxLen {
		maxLen = len2
	}

	distance := sc.LevenshteinDistance(s1, s2)
	return 100.0 * (1.0 - float64(distance)/float64(maxLen))
}

// PartialRatio вычисляет сходство короткой строки с лучшим окном той же
// длины внутри длинной. Так "margaux" находится внутри
// "chateau margaux premier grand cru" с высоким баллом, хотя полный
// Ratio этих строк низкий.
func (sc *Scorer) PartialRatio(s1, s2 string) float64 {
	shorter := []rune(s1)
	longer := []rune(s2)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	if len(shorter) == 0 {
		if len(longer) == 0 {
			return 100.0
		}
		return 0.0
	}
	if len(shorter) == len(longer) {
		return sc.Ratio(string(shorter), string(longer))
	}

	best := 0.0
	for start := 0; start+len(shorter) <= len(longer); start++ {
		window := string(longer[start : start+len(shorter)])
		score := sc.Ratio(string(shorter), window)
		if score > best {
			best = score
		}
		// Лучше 100 уже не будет
		if best == 100.0 {
			break
		}
	}

	return best
}

// TokenSortRatio вычисляет сходство, нечувствительное к порядку слов:
// токены обеих строк сортируются и склеиваются обратно, после чего
// сравниваются обычным Ratio. "roulot meursault" и "meursault roulot"
// дают 100.
func (sc *Scorer) TokenSortRatio(s1, s2 string) float64 {
	return sc.Ratio(sortTokens(s1), sortTokens(s2))
}

// BestRatio возвращает максимум из трех метрик: Ratio, PartialRatio и
// TokenSortRatio. Именно этот балл сравнивается с порогом сопоставления.
func (sc *Scorer) BestRatio(s1, s2 string) float64 {
	best := sc.Ratio(s1, s2)
	if partial := sc.PartialRatio(s1, s2); partial > best {
		best = partial
	}
	if tokenSort := sc.TokenSortRatio(s1, s2); tokenSort > best {
		best = tokenSort
	}
	return best
}

// sortTokens разбивает строку на слова, сортирует их и склеивает одним пробелом
func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// min3Ratio возвращает минимальное из трех чисел
func min3Ratio(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
