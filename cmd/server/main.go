// @title Wine Compare API
// @version 1.0
// @description API сверки журнала погреба (Livre de Cave) с эталонной ведомостью. Поиск вин, отсутствующих в эталоне, по точному ключу LWIN16 и приблизительному сопоставлению названий.

// @contact.name API Support

// @host localhost:5000
// @BasePath /
// @schemes http https

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "winecompare/docs"
	"winecompare/internal/config"
	"winecompare/server"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════")
	log.Println("🍷 Запуск Wine Compare Server...")

	// Загружаем конфигурацию из env
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("✗ Ошибка загрузки конфигурации: %v", err)
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("✗ Ошибка инициализации сервера: %v", err)
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Fatalf("✗ КРИТИЧЕСКАЯ ОШИБКА: Паника при запуске сервера: %v", r)
			}
		}()
		if err := srv.Start(); err != nil {
			log.Fatalf("✗ КРИТИЧЕСКАЯ ОШИБКА: Ошибка запуска сервера: %v", err)
		}
	}()

	log.Printf("✓ Сервер запущен на порту %s", cfg.Port)
	log.Printf("✓ Swagger UI: http://localhost:%s/swagger/index.html", cfg.Port)

	// Ждем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("Получен сигнал %v, остановка сервера...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("✗ Ошибка остановки сервера: %v", err)
	}

	log.Println("✓ Сервер остановлен")
}
