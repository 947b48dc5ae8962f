package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"winecompare/server/middleware"
	"winecompare/server/services"
)

// SystemHandler обработчик системных endpoints (health, stats)
type SystemHandler struct {
	store   *services.ResultsStore
	started time.Time
	version string
}

// NewSystemHandler создает системный обработчик
func NewSystemHandler(store *services.ResultsStore, version string) *SystemHandler {
	return &SystemHandler{
		store:   store,
		started: time.Now(),
		version: version,
	}
}

// HealthResponse ответ проверки здоровья сервера
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	UptimeSec int64  `json:"uptime_sec"`
}

// StatsResponse статистика сервера: хранилище результатов и метрики ошибок
type StatsResponse struct {
	Results services.ResultsStoreStats `json:"results"`
	Errors  map[string]interface{}     `json:"errors"`
}

// HandleHealth обрабатывает проверку здоровья сервера
// @Summary Проверка здоровья
// @Description Возвращает статус сервиса сверки
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse "Сервис работает"
// @Router /api/health [get]
func (h *SystemHandler) HandleHealth(c *gin.Context) {
	SendJSONResponse(c, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "winecompare",
		Version:   h.version,
		Timestamp: time.Now().Format(time.RFC3339),
		UptimeSec: int64(time.Since(h.started).Seconds()),
	})
}

// HandleStats обрабатывает запрос статистики хранилища результатов
// @Summary Статистика сервера
// @Description Возвращает статистику хранилища результатов и метрики ошибок
// @Tags system
// @Produce json
// @Success 200 {object} StatsResponse "Статистика"
// @Router /api/stats [get]
func (h *SystemHandler) HandleStats(c *gin.Context) {
	SendJSONResponse(c, http.StatusOK, StatsResponse{
		Results: h.store.Stats(),
		Errors:  middleware.GetErrorMetrics().GetMetrics(),
	})
}
