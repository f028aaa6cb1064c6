package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	sharedDatabase "storyteller-server/shared/database"
	sharedLogger "storyteller-server/shared/logger"
	sharedMiddleware "storyteller-server/shared/middleware"
	"storyteller-server/story-service/internal/config"
	"storyteller-server/story-service/internal/handler"
	"storyteller-server/story-service/internal/messaging"
	"storyteller-server/story-service/internal/repository"
	"storyteller-server/story-service/internal/safety"
	"storyteller-server/story-service/internal/service"
)

func main() {
	_ = godotenv.Load()
	log.Println("Starting Story Service...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := sharedLogger.New(sharedLogger.Config{
		Level: cfg.LogLevel,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	logger.Info("Logger initialized", zap.String("logLevel", cfg.LogLevel))

	// PostgreSQL
	dbPool, err := setupDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()
	logger.Info("Connected to PostgreSQL")

	if err := sharedDatabase.RunMigrations(cfg.GetDSN(), logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	defer redisClient.Close()
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	pingCancel()
	logger.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr))

	// RabbitMQ
	rabbitConn, err := connectRabbitMQ(cfg.RabbitMQURL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer rabbitConn.Close()
	logger.Info("Connected to RabbitMQ")

	// Dependencies
	subscriptionRepo := repository.NewPgSubscriptionRepository(dbPool, logger)
	phraseSetRepo := repository.NewCachedPhraseSetRepository(
		repository.NewPgPhraseSetRepository(dbPool, logger),
		redisClient,
		cfg.PhraseCacheTTL,
		logger,
	)
	safetyProvider := safety.NewProvider(phraseSetRepo, logger)

	aiClient, err := service.NewAIClient(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create AI client", zap.Error(err))
	}

	reconciliationPublisher, err := messaging.NewRabbitMQReconciliationPublisher(rabbitConn, cfg.ReconciliationQueue, logger)
	if err != nil {
		logger.Fatal("Failed to create reconciliation publisher", zap.Error(err))
	}

	storyService := service.NewStoryService(subscriptionRepo, safetyProvider, aiClient, reconciliationPublisher, logger)
	storyHandler := handler.NewStoryHandler(storyService, logger, cfg.JWTSecret)

	// Echo
	e := echo.New()
	e.Use(sharedMiddleware.EchoZapLogger(logger))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	storyHandler.RegisterRoutes(e)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	log.Printf("Story service listening on port %s", cfg.Port)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("HTTP server error: ", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown signal received, starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal("Graceful shutdown failed: ", err)
	}

	log.Println("Story Service stopped")
}

// setupDatabase initializes and returns the connection pool.
func setupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	dsn := cfg.GetDSN()
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.DBMaxConns)
	poolConfig.MaxConnIdleTime = cfg.DBIdleTimeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	dbPool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err = dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return dbPool, nil
}

// connectRabbitMQ retries the connection a few times before giving up.
func connectRabbitMQ(url string, logger *zap.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	maxRetries := 5
	retryDelay := 5 * time.Second
	for i := 0; i < maxRetries; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxRetries),
			zap.Duration("retry_delay", retryDelay),
			zap.Error(err),
		)
		time.Sleep(retryDelay)
	}
	return nil, err
}
