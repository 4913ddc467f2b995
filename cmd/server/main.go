package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/citywatch/complaints-backend/internal/config"
	"github.com/citywatch/complaints-backend/internal/db"
	httpHandlers "github.com/citywatch/complaints-backend/internal/http/handlers"
	httpRouter "github.com/citywatch/complaints-backend/internal/http/router"
	"github.com/citywatch/complaints-backend/internal/logger"
	"github.com/citywatch/complaints-backend/internal/repository"
	"github.com/citywatch/complaints-backend/internal/service"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Хранилище сессий: Redis переживает рестарты, memory — для
	// development и устаревшего cookie-режима.
	var sessionStore service.SessionStore
	if cfg.SessionStore == config.SessionStoreRedis {
		redisStore, err := service.NewRedisSessionStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("main: ошибка подключения к Redis: %v", err)
		}
		defer redisStore.Close()
		sessionStore = redisStore
	} else {
		sessionStore = service.NewMemorySessionStore()
	}

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	complaintRepo := repository.NewComplaintRepository(dbConn)

	// Сервисы.
	tokenManager := service.NewTokenManager(cfg.SessionSecret, cfg.SessionTTL)
	sessionManager := service.NewSessionManager(cfg.AuthMode, tokenManager, sessionStore)
	authService := service.NewAuthService(userRepo, cfg.PasswordScheme)
	enricher := service.NewEnricher(nil, cfg.PlaceholderImageURL)
	complaintService := service.NewComplaintService(complaintRepo, enricher)

	// HTTP хэндлеры.
	pageHandler := httpHandlers.NewPageHandler()
	authHandler := httpHandlers.NewAuthHandler(authService, sessionManager)
	complaintHandler := httpHandlers.NewComplaintHandler(complaintService)
	userHandler := httpHandlers.NewUserHandler(userRepo)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, pageHandler, authHandler, complaintHandler, userHandler, healthHandler, sessionManager, userRepo)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
