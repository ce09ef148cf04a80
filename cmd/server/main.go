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

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/config"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/events"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/handler"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/middleware"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/repository"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := createLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := connectToDB(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize Redis client (if enabled)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.URL,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logger.Warn("Failed to connect to Redis, running without cache", zap.Error(err))
			redisClient = nil
		} else {
			logger.Info("Connected to Redis", zap.String("address", cfg.Redis.URL))
		}
	}

	// Create repositories
	notificationRepo := repository.NewNotificationRepository(db, logger)
	messageRepo := repository.NewMessageRepository(db, logger)
	membershipRepo := repository.NewMembershipRepository(db, logger)
	userRepo := repository.NewUserRepository(db, logger)

	// Create services
	authService := service.NewAuthService(cfg, logger)
	notificationService := service.NewNotificationService(notificationRepo, redisClient, cfg.Redis.UnreadCountTTL, logger)
	readStateService := service.NewReadStateService(notificationService)
	messageService := service.NewMessageService(messageRepo, userRepo, logger)
	dispatcher := service.NewDispatcher(notificationRepo, membershipRepo, notificationService, logger)

	// Intent transport: in-process dispatch always; Kafka consumer when the
	// topic transport is enabled.
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()

	var emitter service.Emitter = dispatcher
	var kafkaEmitter *events.KafkaEmitter
	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) > 0 {
		kafkaEmitter = events.NewKafkaEmitter(cfg.Kafka.Brokers, cfg.Kafka.IntentTopic, logger)
		emitter = kafkaEmitter

		consumer := events.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.IntentTopic, cfg.Kafka.GroupID, dispatcher, logger)
		go consumer.Run(consumerCtx)
		defer consumer.Close()

		logger.Info("Initialized Kafka intent transport",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.IntentTopic))
	}

	// Create HTTP server
	router := setupRouter(
		cfg,
		authService,
		notificationService,
		readStateService,
		messageService,
		userRepo,
		emitter,
		logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create a deadline for server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stopConsumer()
	if kafkaEmitter != nil {
		kafkaEmitter.Close()
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

func createLogger(level string) (*zap.Logger, error) {
	// Parse log level
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	// Create logger config
	config := zap.Config{
		Level:            zapLevel,
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

func connectToDB(dbConfig config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.DBName,
		dbConfig.SSLMode,
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(dbConfig.MaxOpenConns)
	db.SetMaxIdleConns(dbConfig.MaxIdleConns)
	db.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	return db, nil
}

func setupRouter(
	cfg *config.Config,
	authService *service.AuthService,
	notificationService *service.NotificationService,
	readStateService *service.ReadStateService,
	messageService *service.MessageService,
	userRepo *repository.UserRepository,
	emitter service.Emitter,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Use middlewares
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		notifHandler := handler.NewNotificationHandler(notificationService, readStateService, logger)
		messageHandler := handler.NewMessageHandler(messageService, logger)
		userHandler := handler.NewUserHandler(userRepo, logger)
		eventHandler := handler.NewEventHandler(emitter, logger)
		authHandler := handler.NewAuthHandler(authService, logger)

		// ==================== USER-FACING ROUTES ====================
		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(authService, logger))
		{
			authed.GET("/notifications", notifHandler.GetNotifications)
			authed.GET("/notifications/count", notifHandler.GetUnreadCount)
			authed.PUT("/notifications/:id/read", notifHandler.MarkNotificationAsRead)
			authed.PUT("/notifications/read-all", notifHandler.MarkAllAsRead)

			authed.GET("/messages", messageHandler.ListMessages)
			authed.GET("/messages/:userId", messageHandler.GetHistory)
			authed.POST("/messages/:userId", messageHandler.SendMessage)
			authed.GET("/conversations", messageHandler.GetConversations)

			authed.GET("/users/:id", userHandler.GetUser)
		}

		// ==================== SERVICE API ====================
		// Domain services emit notification intents here.
		svc := v1.Group("/service")
		svc.Use(middleware.ServiceAuthMiddleware(cfg.Auth.ServiceKey, logger))
		{
			svc.POST("/events", eventHandler.EmitEvent)
			svc.POST("/token", authHandler.IssueToken)
		}
	}

	return router
}
