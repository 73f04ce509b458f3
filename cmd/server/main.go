package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"spotilink/internal/cache"
	"spotilink/internal/config"
	"spotilink/internal/handlers"
	"spotilink/internal/services"
)

func main() {
	// .env is optional; real deployments configure the environment directly
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	conversionCache, err := buildCache(cfg)
	if err != nil {
		slog.Error("Failed to initialize cache", "backend", cfg.CacheBackend, "error", err)
		os.Exit(1)
	}
	defer conversionCache.Close()

	odesli := services.NewOdesliService(cfg.OdesliAPIURL, cfg.HTTPTimeout)
	conversions := services.NewConversionService(conversionCache, odesli)

	convertHandler := handlers.NewConvertHandler(conversions, odesli)
	healthHandler := handlers.NewHealthHandler(conversionCache)

	gin.SetMode(cfg.GinMode)
	router := gin.Default()
	router.Use(handlers.CORSMiddleware(cfg))

	router.GET("/api/convert", convertHandler.Convert)
	router.GET("/api/test", convertHandler.Test)
	router.GET("/health", healthHandler.Health)

	slog.Info("Starting server",
		"port", cfg.Port,
		"cache_backend", cfg.CacheBackend,
		"odesli_api", cfg.OdesliAPIURL)

	if err := router.Run(":" + cfg.Port); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func buildCache(cfg *config.Config) (cache.Cache, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendValkey:
		return cache.NewValkeyCache(cfg.ValkeyURL)
	case config.CacheBackendNone:
		return cache.NewNoopCache(), nil
	default:
		return cache.NewHTTPCache(cfg.CacheBaseURL, cfg.CacheSecret, cfg.HTTPTimeout), nil
	}
}
