package services

import (
	"sync"
	"time"

	"winecompare/matching"
)

// StoredResult отчет завершенной сверки, удерживаемый для выгрузки
type StoredResult struct {
	RunID         string
	Report        *matching.Report
	CellarFile    string
	ReferenceFile string
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

// ResultsStore хранит отчеты сверок в памяти до истечения TTL.
// Выгрузка недостающих вин обращается сюда по run ID, поэтому отчет
// должен пережить ответ на сверку, но не накапливаться вечно.
type ResultsStore struct {
	mu      sync.RWMutex
	entries map[string]*StoredResult
	ttl     time.Duration
	hits    int64
	misses  int64
}

// NewResultsStore создает хранилище результатов с заданным TTL
func NewResultsStore(ttl time.Duration) *ResultsStore {
	if ttl <= 0 {
		ttl = time.Hour // TTL по умолчанию: 1 час
	}
	return &ResultsStore{
		entries: make(map[string]*StoredResult),
		ttl:     ttl,
	}
}

// Put сохраняет результат сверки. Срок жизни отсчитывается от момента записи
func (s *ResultsStore) Put(result *StoredResult) {
	if result == nil || result.RunID == "" {
		return
	}

	now := time.Now()
	if result.CreatedAt.IsZero() {
		result.CreatedAt = now
	}
	result.ExpiresAt = now.Add(s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[result.RunID] = result
}

// Get возвращает результат по run ID, если он еще не истек.
// Истекший результат удаляется при обращении
func (s *ResultsStore) Get(runID string) (*StoredResult, bool) {
	s.mu.RLock()
	result, ok := s.entries[runID]
	s.mu.RUnlock()

	if !ok {
		s.mu.Lock()
		s.misses++
		s.mu.Unlock()
		return nil, false
	}

	if time.Now().After(result.ExpiresAt) {
		s.mu.Lock()
		delete(s.entries, runID)
		s.misses++
		s.mu.Unlock()
		return nil, false
	}

	s.mu.Lock()
	s.hits++
	s.mu.Unlock()

	return result, true
}

// Delete удаляет результат по run ID
func (s *ResultsStore) Delete(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, runID)
}

// Len возвращает число удерживаемых результатов, включая истекшие
func (s *ResultsStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Cleanup удаляет истекшие результаты и возвращает их число.
// Вызывается фоновой задачей сервера по расписанию
func (s *ResultsStore) Cleanup() int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, result := range s.entries {
		if now.After(result.ExpiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// ResultsStoreStats статистика хранилища результатов
type ResultsStoreStats struct {
	Entries int     `json:"entries"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"` // Процент попаданий (0-1)
	TTL     string  `json:"ttl"`
}

// Stats возвращает статистику хранилища
func (s *ResultsStore) Stats() ResultsStoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := s.hits + s.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(s.hits) / float64(total)
	}

	return ResultsStoreStats{
		Entries: len(s.entries),
		Hits:    s.hits,
		Misses:  s.misses,
		HitRate: hitRate,
		TTL:     s.ttl.String(),
	}
}
