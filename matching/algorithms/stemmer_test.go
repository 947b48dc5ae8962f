package algorithms

import (
	"testing"
)

func TestFrenchStemmer_Stem(t *testing.T) {
	stemmer := NewFrenchStemmer()

	// Формы одного слова должны сводиться к одной основе
	pairs := []struct {
		name  string
		left  string
		right string
	}{
		{"единственное и множественное", "rouge", "rouges"},
		{"bouteille variants", "bouteille", "bouteilles"},
		{"blanc variants", "blanc", "blancs"},
		{"cuvee variants", "cuvee", "cuvees"},
		{"caisse variants", "caisse", "caisses"},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			leftStem := stemmer.Stem(tt.left)
			rightStem := stemmer.Stem(tt.right)
			if leftStem != rightStem {
				t.Errorf("Stem(%q) = %q, Stem(%q) = %q, expected equal stems",
					tt.left, leftStem, tt.right, rightStem)
			}
			if leftStem == "" {
				t.Errorf("Stem(%q) returned empty stem", tt.left)
			}
		})
	}
}

func TestFrenchStemmer_EmptyAndWhitespace(t *testing.T) {
	stemmer := NewFrenchStemmer()

	if result := stemmer.Stem(""); result != "" {
		t.Errorf("Stem(\"\") = %q, expected empty", result)
	}
	if result := stemmer.Stem("   "); result != "" {
		t.Errorf("Stem(\"   \") = %q, expected empty", result)
	}
}

func TestFrenchStemmer_Uppercase(t *testing.T) {
	stemmer := NewFrenchStemmer()

	// Стеммер сам приводит слово к нижнему регистру
	if stemmer.Stem("ROUGES") != stemmer.Stem("rouges") {
		t.Error("Stem должен быть нечувствителен к регистру")
	}
}

func TestFrenchStemmer_CacheConsistency(t *testing.T) {
	stemmer := NewFrenchStemmer()

	// Повторный вызов возвращает тот же результат из кэша
	first := stemmer.Stem("meursault")
	second := stemmer.Stem("meursault")
	if first != second {
		t.Errorf("Cached stem differs: %q != %q", first, second)
	}
}

func TestFrenchStemmer_StemTokens(t *testing.T) {
	stemmer := NewFrenchStemmer()

	tokens := stemmer.StemTokens([]string{"vins", "rouges", ""})
	// Пустые токены отбрасываются
	if len(tokens) != 2 {
		t.Errorf("Expected 2 stemmed tokens, got %d", len(tokens))
	}
}
