package algorithms

import (
	"math"
	"testing"
)

const ratioEpsilon = 0.0001

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < ratioEpsilon
}

// Тесты для LevenshteinDistance
func TestScorer_LevenshteinDistance(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name     string
		s1       string
		s2       string
		expected int
	}{
		{"идентичные строки", "petrus", "petrus", 0},
		{"классический пример", "kitten", "sitting", 3},
		{"пустая и непустая", "", "margaux", 7},
		{"обе пустые", "", "", 0},
		{"одна замена", "meursault", "meurseult", 1},
		{"юникод считается по рунам", "пёти", "пети", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scorer.LevenshteinDistance(tt.s1, tt.s2)
			if result != tt.expected {
				t.Errorf("LevenshteinDistance(%q, %q) = %d, expected %d",
					tt.s1, tt.s2, result, tt.expected)
			}
		})
	}
}

// Тесты для Ratio
func TestScorer_Ratio(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name     string
		s1       string
		s2       string
		expected float64
	}{
		{"идентичные строки", "chateau margaux 2015", "chateau margaux 2015", 100.0},
		{"обе пустые", "", "", 100.0},
		{"одна пустая", "petrus", "", 0.0},
		{"одна замена из трех", "abc", "abd", 100.0 * 2.0 / 3.0},
		{"полностью разные", "aaa", "bbb", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scorer.Ratio(tt.s1, tt.s2)
			if !almostEqual(result, tt.expected) {
				t.Errorf("Ratio(%q, %q) = %f, expected %f", tt.s1, tt.s2, result, tt.expected)
			}
		})
	}
}

// Ratio всегда в диапазоне [0, 100]
func TestScorer_RatioBounds(t *testing.T) {
	scorer := NewScorer()

	pairs := [][2]string{
		{"domaine roulot meursault 2018", "roulot meursault perrieres 2018"},
		{"a", "completely different string"},
		{"", "x"},
		{"clos de tart", "clos des lambrays"},
	}

	for _, pair := range pairs {
		score := scorer.Ratio(pair[0], pair[1])
		if score < 0.0 || score > 100.0 {
			t.Errorf("Ratio(%q, %q) = %f вне диапазона [0, 100]", pair[0], pair[1], score)
		}
	}
}

// Тесты для PartialRatio
func TestScorer_PartialRatio(t *testing.T) {
	scorer := NewScorer()

	// Короткая строка содержится в длинной целиком: балл 100
	score := scorer.PartialRatio("margaux", "chateau margaux premier")
	if !almostEqual(score, 100.0) {
		t.Errorf("PartialRatio для точной подстроки = %f, expected 100", score)
	}

	// Порядок аргументов не важен
	left := scorer.PartialRatio("petrus", "chateau petrus pomerol")
	right := scorer.PartialRatio("chateau petrus pomerol", "petrus")
	if !almostEqual(left, right) {
		t.Errorf("PartialRatio несимметричен: %f != %f", left, right)
	}

	// PartialRatio не меньше обычного Ratio для вложенных строк
	full := scorer.Ratio("margaux", "chateau margaux")
	partial := scorer.PartialRatio("margaux", "chateau margaux")
	if partial < full {
		t.Errorf("PartialRatio (%f) меньше Ratio (%f) для вложенной строки", partial, full)
	}
}

// Тесты для TokenSortRatio
func TestScorer_TokenSortRatio(t *testing.T) {
	scorer := NewScorer()

	// Перестановка слов дает 100
	score := scorer.TokenSortRatio("roulot meursault 2018", "meursault roulot 2018")
	if !almostEqual(score, 100.0) {
		t.Errorf("TokenSortRatio для перестановки слов = %f, expected 100", score)
	}

	// Для несвязанных строк балл остается низким
	score = scorer.TokenSortRatio("petrus pomerol", "romanee conti")
	if score > 50.0 {
		t.Errorf("TokenSortRatio для разных вин подозрительно высок: %f", score)
	}
}

// BestRatio — максимум трех метрик
func TestScorer_BestRatio(t *testing.T) {
	scorer := NewScorer()

	pairs := [][2]string{
		{"chateau margaux 2015", "chateau margaux 2015"},
		{"margaux", "chateau margaux premier"},
		{"roulot meursault", "meursault roulot"},
		{"petrus", "romanee conti"},
	}

	for _, pair := range pairs {
		best := scorer.BestRatio(pair[0], pair[1])
		ratio := scorer.Ratio(pair[0], pair[1])
		partial := scorer.PartialRatio(pair[0], pair[1])
		tokenSort := scorer.TokenSortRatio(pair[0], pair[1])

		if best < ratio || best < partial || best < tokenSort {
			t.Errorf("BestRatio(%q, %q) = %f меньше одной из метрик (%f, %f, %f)",
				pair[0], pair[1], best, ratio, partial, tokenSort)
		}

		expected := ratio
		if partial > expected {
			expected = partial
		}
		if tokenSort > expected {
			expected = tokenSort
		}
		if !almostEqual(best, expected) {
			t.Errorf("BestRatio(%q, %q) = %f, expected max = %f", pair[0], pair[1], best, expected)
		}
	}
}
