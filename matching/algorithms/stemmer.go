package algorithms

import (
	"strings"
	"sync"

	"github.com/kljensen/snowball"
)

// FrenchStemmer reduces French words to their stems using the Snowball
// algorithm. Wine names are mostly French, so stemming folds plural and
// gender variants together: "rouge" and "rouges" share the stem "roug".
type FrenchStemmer struct {
	language string
	cache    map[string]string
	mu       sync.RWMutex
	useCache bool
}

// NewFrenchStemmer creates a new French language stemmer with caching
func NewFrenchStemmer() *FrenchStemmer {
	return &FrenchStemmer{
		language: "french",
		cache:    make(map[string]string),
		useCache: true,
	}
}

// Stem returns the stemmed version of a word
func (s *FrenchStemmer) Stem(word string) string {
	if word == "" {
		return ""
	}

	normalized := strings.ToLower(strings.TrimSpace(word))
	if normalized == "" {
		return ""
	}

	if s.useCache {
		s.mu.RLock()
		cached, ok := s.cache[normalized]
		s.mu.RUnlock()
		if ok {
			return cached
		}
	}

	stemmed, err := snowball.Stem(normalized, s.language, true)
	if err != nil {
		// If stemming fails, fall back to the normalized word
		stemmed = normalized
	}

	if s.useCache {
		s.mu.Lock()
		s.cache[normalized] = stemmed
		s.mu.Unlock()
	}

	return stemmed
}

// StemTokens returns stemmed versions of multiple words
func (s *FrenchStemmer) StemTokens(tokens []string) []string {
	if len(tokens) == 0 {
		return tokens
	}

	stemmed := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if st := s.Stem(token); st != "" {
			stemmed = append(stemmed, st)
		}
	}
	return stemmed
}
