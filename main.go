package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"fyyur/internal/config"
	"fyyur/internal/database"
	"fyyur/internal/directory/api"
	"fyyur/internal/directory/db"
	"fyyur/internal/directory/service"
	"fyyur/internal/flash"
	"fyyur/internal/kafka"
	"fyyur/internal/logger"
	"fyyur/internal/timefmt"
)

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()

	logger := logger.NewLogger(cfg.Log.Dir)
	defer logger.Close()

	logger.Info("APP", "Starting Fyyur initialization")
	if envErr != nil {
		logger.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		logger.Info("CONFIG", "Loaded environment variables from .env file")
	}

	ctx := context.Background()

	bunDB, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("DATABASE", err.Error())
	}
	defer bunDB.Close()

	if cfg.Database.AutoMigrate {
		logger.Info("DATABASE", "Preparing schema")
		if err := database.Prepare(ctx, bunDB, cfg.Database.Driver, cfg.Database.MigrationsDir); err != nil {
			logger.Fatal("DATABASE", fmt.Sprintf("Schema preparation failed: %v", err))
		}
	}

	flashes, closeFlashes := newFlashStore(ctx, cfg.Redis, logger)
	defer closeFlashes()

	svc := service.NewService(db.New(bunDB), logger)
	svc.Formatter = timefmt.New(cfg.Location)
	svc.Location = cfg.Location

	if cfg.Kafka.Enabled {
		logger.Info("KAFKA", fmt.Sprintf("Using Kafka brokers %v", cfg.Kafka.Brokers))
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, kafka.TopicNames(cfg.Kafka.Topics), logger); err != nil {
			logger.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		}
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics, logger)
		defer producer.Close()
		svc.Publisher = producer
		logger.Info("KAFKA", "Kafka producer initialized successfully")
	} else {
		logger.Info("KAFKA", "Kafka disabled, listing events are not published")
	}

	logger.Info("HTTP", "Setting up router and middleware")
	handler := api.NewHandler(svc, flashes, logger)
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      api.NewRouter(handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP", fmt.Sprintf("🚀 Fyyur running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	logger.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		logger.Info("HTTP", "✅ Fyyur shutdown complete")
	}
}

// newFlashStore uses Redis when REDIS_ADDR is set and reachable, and process
// memory otherwise.
func newFlashStore(ctx context.Context, cfg config.RedisConfig, logger *logger.Logger) (flash.Store, func()) {
	if cfg.Addr == "" {
		logger.Info("REDIS", "REDIS_ADDR not set, keeping flash messages in memory")
		return flash.NewMemoryStore(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("REDIS", fmt.Sprintf("Redis connection error, keeping flash messages in memory: %v", err))
		client.Close()
		return flash.NewMemoryStore(), func() {}
	}

	logger.Info("REDIS", fmt.Sprintf("✅ Redis connection successful to %s (DB: %d)", cfg.Addr, cfg.DB))
	return flash.NewRedisStore(client, cfg.FlashTTL), func() { client.Close() }
}
