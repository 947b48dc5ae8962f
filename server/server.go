// Package server собирает HTTP сервис сверки: конфигурация, сервисы,
// Gin роутер с middleware и graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"winecompare/database"
	"winecompare/internal/config"
	"winecompare/matching"
	"winecompare/server/handlers"
	"winecompare/server/middleware"
	"winecompare/server/services"
	"winecompare/websearch"
)

// Version версия сервиса, отдается в /api/health
const Version = "1.0.0"

// Server HTTP сервер сверки журнала погреба с эталонной ведомостью
type Server struct {
	config *config.Config

	store      *services.ResultsStore
	history    *database.HistoryDB
	comparison *services.ComparisonService
	lookup     *websearch.Client

	httpServer  *http.Server
	httpHandler http.Handler
	handlerOnce sync.Once

	shutdownChan chan struct{}
	shutdownOnce sync.Once
}

// NewServer создает сервер из конфигурации. Ошибки конфигурации
// (неизвестный пресет, невалидный порог) фатальны до приема запросов.
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	SetLogLevel(cfg.LogLevel)

	basePolicy, err := buildBasePolicy(cfg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:       cfg,
		store:        services.NewResultsStore(cfg.ResultsTTL),
		shutdownChan: make(chan struct{}),
	}

	if cfg.HistoryDatabasePath != "" {
		history, err := database.NewHistoryDB(cfg.HistoryDatabasePath)
		if err != nil {
			return nil, fmt.Errorf("не удалось открыть базу истории сверок: %w", err)
		}
		s.history = history
		log.Printf("✓ История сверок: %s", cfg.HistoryDatabasePath)
	} else {
		log.Printf("История сверок выключена (пустой HISTORY_DATABASE_PATH)")
	}

	var historyWriter services.HistoryWriter
	if s.history != nil {
		historyWriter = s.history
	}
	s.comparison = services.NewComparisonService(basePolicy, s.store, historyWriter)

	if cfg.Lookup != nil && cfg.Lookup.Enabled {
		s.lookup = websearch.NewClientFromConfig(cfg.Lookup)
		log.Printf("✓ Поиск кодов LWIN включен: %s", cfg.Lookup.BaseURL)
	}

	return s, nil
}

// buildBasePolicy собирает базовую политику сопоставления из конфигурации:
// именованный пресет, затем переопределение порога
func buildBasePolicy(cfg *config.Config) (matching.Policy, error) {
	policy, err := matching.PolicyByName(cfg.MatchPreset)
	if err != nil {
		return matching.Policy{}, fmt.Errorf("невалидная конфигурация сопоставления: %w", err)
	}

	if cfg.MatchThreshold >= 0 {
		policy.Threshold = cfg.MatchThreshold
		if policy.EarlyExitScore < policy.Threshold {
			policy.EarlyExitScore = policy.Threshold
		}
	}

	if err := policy.Validate(); err != nil {
		return matching.Policy{}, fmt.Errorf("невалидная конфигурация сопоставления: %w", err)
	}

	return policy, nil
}

// Start запускает HTTP сервер и фоновую очистку результатов.
// Блокируется до остановки сервера.
func (s *Server) Start() error {
	handler := s.ensureHTTPHandler()

	// WriteTimeout с запасом: выгрузка больших XLSX отчетов небыстрая
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go s.startResultsCleanup()

	log.Printf("Starting HTTP server on %s...", s.httpServer.Addr)
	log.Printf("API доступно по адресу: http://localhost%s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("не удалось запустить HTTP сервер на %s: %w", s.httpServer.Addr, err)
	}

	return nil
}

// ServeHTTP реализует http.Handler для тестов и вспомогательных утилит
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.ensureHTTPHandler().ServeHTTP(w, r)
}

// Shutdown останавливает HTTP сервер gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Initiating graceful shutdown...")

	s.shutdownOnce.Do(func() {
		close(s.shutdownChan)
	})

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("ошибка остановки сервера: %w", err)
		}
	}

	if s.history != nil {
		if err := s.history.Close(); err != nil {
			log.Printf("✗ Ошибка закрытия базы истории: %v", err)
		}
	}

	log.Println("Graceful shutdown completed")
	return nil
}

func (s *Server) ensureHTTPHandler() http.Handler {
	s.handlerOnce.Do(func() {
		s.httpHandler = s.buildHTTPHandler()
	})

	return s.httpHandler
}

// buildHTTPHandler собирает Gin роутер: middleware, swagger, маршруты API
func (s *Server) buildHTTPHandler() http.Handler {
	// Режим Gin: release для продакшена, переопределяется через GIN_MODE
	if ginMode := os.Getenv("GIN_MODE"); ginMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Сборщик метрик ошибок: наполняется обработчиками и recovery,
	// отдается в /api/stats
	middleware.InitErrorMetrics()

	router := gin.New()

	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinGzipMiddleware())
	router.Use(middleware.GinLoggerMiddleware())
	router.Use(middleware.GinRecoveryMiddleware())

	handlers.RegisterSwaggerRoutes(router, "localhost:"+s.config.Port)

	s.registerRoutes(router)

	return router
}

// registerRoutes регистрирует маршруты API сверки
func (s *Server) registerRoutes(router *gin.Engine) {
	system := handlers.NewSystemHandler(s.store, Version)
	comparison := handlers.NewComparisonHandler(s.comparison, s.store, s.config.MaxUploadBytes)
	runs := handlers.NewRunsHandler(s.history, s.config.HistoryLimit)
	presets := handlers.NewPresetsHandler(s.config.MatchPreset)
	lookup := handlers.NewLookupHandler(s.lookup)

	router.GET("/health", system.HandleHealth)

	api := router.Group("/api")
	{
		api.GET("/health", system.HandleHealth)
		api.GET("/stats", system.HandleStats)

		api.POST("/compare", comparison.HandleCompare)
		api.GET("/download/missing/:id", comparison.HandleDownloadMissing)

		api.GET("/runs", runs.HandleListRuns)
		api.GET("/policy/presets", presets.HandlePresets)
		api.POST("/lookup/lwin", lookup.HandleLookupLWIN)
	}
}

// startResultsCleanup периодически удаляет истекшие результаты сверок
func (s *Server) startResultsCleanup() {
	interval := s.config.ResultsCleanupInterval
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := s.store.Cleanup(); removed > 0 {
				log.Printf("[ResultsCleanup] Удалено истекших результатов: %d", removed)
			}
		case <-s.shutdownChan:
			return
		}
	}
}
