package algorithms

import (
	"strings"
)

// TokenExtractor строит множества токенов для отбора кандидатов
// приблизительного сопоставления. Токен — слово нормализованного названия.
// Опциональный стемминг сводит французские словоформы к основе
// ("cotes"/"cote" -> "cot"), что делает отбор кандидатов терпимее
// к формам множественного числа; на итоговый балл сходства стемминг
// не влияет, он применяется только при отборе.
type TokenExtractor struct {
	useStemming bool
	stemmer     *FrenchStemmer
}

// NewTokenExtractor создает экстрактор токенов без стемминга
func NewTokenExtractor() *TokenExtractor {
	return &TokenExtractor{}
}

// NewTokenExtractorWithStemming создает экстрактор со стеммингом токенов
func NewTokenExtractorWithStemming() *TokenExtractor {
	return &TokenExtractor{
		useStemming: true,
		stemmer:     NewFrenchStemmer(),
	}
}

// Tokenize разбивает нормализованное название на токены
func (te *TokenExtractor) Tokenize(name string) []string {
	tokens := strings.Fields(name)
	if !te.useStemming {
		return tokens
	}
	return te.stemmer.StemTokens(tokens)
}

// TokenSet строит множество токенов названия
func (te *TokenExtractor) TokenSet(name string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range te.Tokenize(name) {
		set[token] = true
	}
	return set
}

// CommonTokenCount возвращает количество общих токенов двух множеств
func (te *TokenExtractor) CommonTokenCount(set1, set2 map[string]bool) int {
	// Итерируем по меньшему множеству
	if len(set2) < len(set1) {
		set1, set2 = set2, set1
	}

	common := 0
	for token := range set1 {
		if set2[token] {
			common++
		}
	}
	return common
}
