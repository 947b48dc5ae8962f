package websearch

import (
	"sync"
	"time"
)

// CacheConfig конфигурация кэша результатов поиска
type CacheConfig struct {
	Enabled         bool          `json:"enabled"`
	TTL             time.Duration `json:"ttl"`
	CleanupInterval time.Duration `json:"cleanup_interval"`
	MaxSize         int           `json:"max_size"`
}

// CacheEntry запись кэша
type CacheEntry struct {
	Result      *LookupResult
	Expiration  time.Time
	AccessCount int
}

// CacheStats статистика кэша
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// Cache кэш результатов поиска кодов LWIN.
// Коды LWIN не меняются со временем, поэтому TTL по умолчанию длинный:
// повторный запрос по тому же вину не должен ходить в сеть.
type Cache struct {
	config *CacheConfig
	data   map[string]*CacheEntry
	mutex  sync.RWMutex
	stats  *CacheStats
}

// NewCache создает новый кэш результатов поиска
func NewCache(config *CacheConfig) *Cache {
	if config == nil {
		config = &CacheConfig{Enabled: true}
	}
	if config.TTL == 0 {
		config.TTL = 24 * time.Hour
	}
	if config.CleanupInterval == 0 {
		config.CleanupInterval = 10 * time.Minute
	}
	if config.MaxSize == 0 {
		config.MaxSize = 1000
	}

	cache := &Cache{
		config: config,
		data:   make(map[string]*CacheEntry),
		stats:  &CacheStats{},
	}

	if config.Enabled {
		go cache.startCleanup()
	}

	return cache
}

// Get возвращает результат из кэша
func (c *Cache) Get(key string) (*LookupResult, bool) {
	if !c.config.Enabled {
		return nil, false
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, found := c.data[key]
	if !found {
		c.stats.Misses++
		return nil, false
	}

	if time.Now().After(entry.Expiration) {
		delete(c.data, key)
		c.stats.Misses++
		c.stats.Size = len(c.data)
		return nil, false
	}

	entry.AccessCount++
	c.stats.Hits++
	return entry.Result, true
}

// Set сохраняет результат в кэш
func (c *Cache) Set(key string, result *LookupResult) {
	if !c.config.Enabled {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if len(c.data) >= c.config.MaxSize {
		c.evictLRU()
	}

	c.data[key] = &CacheEntry{
		Result:     result,
		Expiration: time.Now().Add(c.config.TTL),
	}
	c.stats.Size = len(c.data)
}

// evictLRU удаляет запись с наименьшим числом обращений.
// Вызывается под мьютексом.
func (c *Cache) evictLRU() {
	var lruKey string
	minAccess := int(^uint(0) >> 1)

	for key, entry := range c.data {
		if entry.AccessCount < minAccess {
			minAccess = entry.AccessCount
			lruKey = key
		}
	}

	if lruKey != "" {
		delete(c.data, lruKey)
	}
}

// Clear очищает кэш
func (c *Cache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]*CacheEntry)
	c.stats.Size = 0
}

// GetStats возвращает статистику кэша
func (c *Cache) GetStats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return CacheStats{
		Hits:   c.stats.Hits,
		Misses: c.stats.Misses,
		Size:   len(c.data),
	}
}

// startCleanup периодически удаляет просроченные записи
func (c *Cache) startCleanup() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

// cleanup удаляет просроченные записи
func (c *Cache) cleanup() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, entry := range c.data {
		if now.After(entry.Expiration) {
			delete(c.data, key)
		}
	}
	c.stats.Size = len(c.data)
}
