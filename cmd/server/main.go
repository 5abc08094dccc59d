package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/orbitwise/fdsaas/internal/api"
	"github.com/orbitwise/fdsaas/internal/factory"
	"github.com/orbitwise/fdsaas/internal/services/auth"
	redisstorage "github.com/orbitwise/fdsaas/internal/storage/redis"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("FDSAAS_STORAGE_TYPE"),
		DigestType:  os.Getenv("FDSAAS_DIGEST_TYPE"),
	}

	authCfg := auth.DefaultConfig()
	if key := os.Getenv("FDSAAS_SIGNING_KEY"); key != "" {
		authCfg.SigningKey = []byte(key)
	}
	if window := os.Getenv("FDSAAS_FRESHNESS_WINDOW"); window != "" {
		d, err := time.ParseDuration(window)
		if err != nil {
			logger.Error("invalid FDSAAS_FRESHNESS_WINDOW", slog.String("error", err.Error()))
			os.Exit(1)
		}
		authCfg.FreshnessWindow = d
	}
	cfg.AuthConfig = authCfg

	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("FDSAAS_REDIS_URL")
		if redisURL == "" {
			logger.Error("FDSAAS_REDIS_URL required when FDSAAS_STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Handle graceful shutdown: a signal or the exit endpoint both cancel
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GatewayService: app.GatewayService,
		Version:        Version,
		ExitKey:        os.Getenv("FDSAAS_EXIT_KEY"),
		Shutdown:       cancel,
	})

	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("FDSAAS_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid FDSAAS_PORT", slog.String("error", err.Error()))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(router, serverConfig, logger)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("version", Version))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
