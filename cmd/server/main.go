package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/openexpo/jurypanel/internal/api"
	"github.com/openexpo/jurypanel/internal/factory"
	"github.com/openexpo/jurypanel/internal/services/resetwindow"
	redisstorage "github.com/openexpo/jurypanel/internal/storage/redis"
	"github.com/openexpo/jurypanel/internal/storage/sqlstore"
)

func main() {
	// Optional .env file for local development
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	apiKey := os.Getenv("API_KEY")
	adminPasswordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if apiKey == "" || adminPasswordHash == "" {
		logger.Error("API_KEY and ADMIN_PASSWORD_HASH are required")
		os.Exit(1)
	}

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	if minutes := os.Getenv("RESET_WINDOW_MINUTES"); minutes != "" {
		n, err := strconv.Atoi(minutes)
		if err != nil || n <= 0 {
			logger.Error("invalid RESET_WINDOW_MINUTES", slog.String("value", minutes))
			os.Exit(1)
		}
		cfg.WindowConfig = resetwindow.Config{Window: time.Duration(n) * time.Minute}
	}

	switch cfg.StorageType {
	case factory.StorageTypeRedis:
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	case factory.StorageTypeSQL:
		sqlCfg := sqlstore.Config{
			Driver: os.Getenv("SQL_DRIVER"),
			DSN:    os.Getenv("SQL_DSN"),
		}
		if sqlCfg.Driver == "" || sqlCfg.DSN == "" {
			logger.Error("SQL_DRIVER and SQL_DSN required when STORAGE_TYPE=sql")
			os.Exit(1)
		}
		cfg.SQLConfig = &sqlCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		APIKey:            apiKey,
		AdminPasswordHash: adminPasswordHash,
		TokenService:      app.TokenService,
		PINService:        app.PINService,
		DraftService:      app.DraftService,
		ResetWindow:       app.ResetWindow,
		EvaluationService: app.EvaluationService,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("value", port))
			os.Exit(1)
		}
		serverConfig.Port = n
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	logger.Info("server started", slog.String("addr", server.Addr()))

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
