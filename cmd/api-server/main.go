package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"caseflow/database"
	"caseflow/internal/changefeed"
	"caseflow/internal/config"
	"caseflow/internal/handler"
	"caseflow/internal/middleware"
	"caseflow/internal/repository"
	"caseflow/internal/service"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	// 2. Connect to the database
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// 3. Change feed: local hub, fanned out over redis when available
	hub := changefeed.NewHub()
	var publisher changefeed.Publisher = hub

	bus, err := changefeed.NewRedisBus(cfg.RedisURL, cfg.RedisPassword, hub, logger)
	if err != nil {
		logger.Warn("redis unavailable, change feed is instance-local", "error", err)
	} else {
		publisher = bus
		go bus.Run(context.Background())
		defer bus.Close()
	}

	// 4. Repositories and services
	deadlineRepo := repository.NewDeadlineRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	scannerSvc := service.NewScannerService(deadlineRepo, notificationRepo, publisher)
	notificationSvc := service.NewNotificationService(notificationRepo, publisher)
	deadlineSvc := service.NewDeadlineService(deadlineRepo, publisher)

	// 5. Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	handler.NewNotificationHandler(notificationSvc).RegisterRoutes(api.Group("/notifications"))
	handler.NewDeadlineHandler(deadlineSvc).RegisterRoutes(api.Group("/deadlines"))
	handler.NewFunctionHandler(scannerSvc).RegisterRoutes(api.Group("/functions"))

	feedHandler := handler.NewFeedHandler(hub, logger)
	api.GET("/ws", feedHandler.Serve)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
