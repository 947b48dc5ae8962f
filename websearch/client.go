package websearch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"winecompare/internal/config"
)

// DefaultBaseURL адрес HTML-поиска DuckDuckGo.
// HTML-версия не требует ключа API и отдает результаты обычной страницей.
const DefaultBaseURL = "https://html.duckduckgo.com/html"

// Client клиент поиска кодов LWIN через веб-поиск.
// Запрос дополняется словом "LWIN", из заголовков и сниппетов результатов
// извлекаются семизначные коды. Поиск внешний и необязательный: сверка
// работает без него, клиент лишь помогает заполнить пустые коды в livre de cave.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	cache      *Cache
}

// ClientConfig конфигурация клиента поиска
type ClientConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit rate.Limit
	Cache     *Cache
}

// NewClient создает новый клиент поиска кодов LWIN
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = rate.Every(time.Second)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		timeout: cfg.Timeout,
		limiter: rate.NewLimiter(cfg.RateLimit, 1),
		cache:   cfg.Cache,
	}
}

// NewClientFromConfig создает клиент из конфигурации приложения.
// Возвращает nil, если поиск выключен.
func NewClientFromConfig(cfg *config.LookupConfig) *Client {
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	var cache *Cache
	if cfg.CacheEnabled {
		cache = NewCache(&CacheConfig{
			Enabled: true,
			TTL:     cfg.CacheTTL,
		})
	}

	limit := rate.Every(time.Second)
	if cfg.RateLimitPerSec > 0 {
		limit = rate.Limit(cfg.RateLimitPerSec)
	}

	return NewClient(ClientConfig{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		RateLimit: limit,
		Cache:     cache,
	})
}

// LookupLWIN ищет код LWIN по описанию вина (производитель, название, миллезим).
// Результат кэшируется по хэшу запроса, частота внешних запросов ограничена.
func (c *Client) LookupLWIN(ctx context.Context, query string) (*LookupResult, error) {
	query = sanitizeQuery(query)
	if query == "" {
		return nil, fmt.Errorf("empty query after sanitization")
	}

	cacheKey := generateCacheKey("lwin:" + query)
	if c.cache != nil {
		if cached, found := c.cache.Get(cacheKey); found {
			return cached, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	searchURL := fmt.Sprintf("%s/?q=%s", c.baseURL, url.QueryEscape(query+" LWIN"))

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Заголовки обычного браузера: ботам HTML-версия отдает пустую страницу
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en-US;q=0.8,en;q=0.7")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	result, err := parseSearchPage(resp.Body, query)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	if c.cache != nil {
		c.cache.Set(cacheKey, result)
	}

	return result, nil
}

// CacheStats возвращает статистику кэша клиента
func (c *Client) CacheStats() CacheStats {
	if c.cache == nil {
		return CacheStats{}
	}
	return c.cache.GetStats()
}

// sanitizeQuery очищает поисковый запрос
func sanitizeQuery(query string) string {
	query = strings.TrimSpace(query)
	if len(query) > 200 {
		query = query[:200]
	}
	return query
}

// generateCacheKey генерирует ключ кэша из запроса
func generateCacheKey(query string) string {
	hash := sha256.Sum256([]byte(strings.ToLower(query)))
	return hex.EncodeToString(hash[:])
}
