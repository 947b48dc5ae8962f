package websearch

import "time"

// SearchItem один результат веб-поиска
type SearchItem struct {
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	Snippet   string  `json:"snippet"`
	Relevance float64 `json:"relevance"`
}

// LWINCandidate код LWIN, извлеченный из результатов поиска
type LWINCandidate struct {
	Code        string  `json:"code"`
	Occurrences int     `json:"occurrences"`
	Confidence  float64 `json:"confidence"`
	Source      string  `json:"source,omitempty"` // URL первого результата с этим кодом
}

// LookupResult итог поиска кода LWIN по описанию вина.
// Candidates отсортированы по убыванию уверенности: первый кандидат
// считается лучшим предположением.
type LookupResult struct {
	Query      string          `json:"query"`
	Found      bool            `json:"found"`
	Candidates []LWINCandidate `json:"candidates"`
	Results    []SearchItem    `json:"results,omitempty"`
	Confidence float64         `json:"confidence"`
	Source     string          `json:"source"`
	Timestamp  time.Time       `json:"timestamp"`
}
