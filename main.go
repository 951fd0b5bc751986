package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	awspkg "github.com/rashmithaRKL/cake/pkg/aws"

	"github.com/rashmithaRKL/cake/controllers"
	"github.com/rashmithaRKL/cake/database"
	"github.com/rashmithaRKL/cake/kafka"
	"github.com/rashmithaRKL/cake/models"
	"github.com/rashmithaRKL/cake/notifier"
	"github.com/rashmithaRKL/cake/repository"
	"github.com/rashmithaRKL/cake/routes"
	"github.com/rashmithaRKL/cake/services"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := database.Connect(cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderCounter{},
	); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}

	// --- Dependency injection ---

	var productRepo repository.ProductRepository = repository.NewGormProductRepository(db)
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, product cache disabled", zap.Error(err))
		} else {
			productRepo = repository.NewCachedProductRepository(productRepo, redisClient, logger)
			defer redisClient.Close()
		}
	}

	orderRepo := repository.NewGormOrderRepository(db)
	gateway := services.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	hub := notifier.NewHub()

	var producer kafka.ProducerAPI
	if len(cfg.KafkaBrokers) > 0 {
		p := kafka.NewProducer(cfg.KafkaBrokers, logger)
		defer p.Close()
		producer = p
	}

	var snsClient awspkg.SNSPublisher
	if cfg.OrderSNSTopicARN != "" {
		awsCfg, err := awspkg.LoadAWSConfig(context.Background())
		if err != nil {
			logger.Warn("AWS config unavailable, SNS mirror disabled", zap.Error(err))
		} else {
			snsClient = awspkg.NewSNSClient(awsCfg)
		}
	}

	orderService := services.NewOrderService(
		orderRepo, productRepo, gateway, hub,
		producer, cfg.KafkaTopic,
		snsClient, cfg.OrderSNSTopicARN,
		cfg.DeliveryFee, logger,
	)

	orderController := controllers.NewOrderController(orderService)
	webhookController := controllers.NewWebhookController(orderService, gateway, logger)
	eventsController := controllers.NewEventsController(orderService, hub)

	// --- HTTP server & middleware ---

	r := gin.New()
	r.Use(gin.Recovery())

	// Request timeout, except for SSE streams which stay open.
	r.Use(func(c *gin.Context) {
		if strings.HasSuffix(c.Request.URL.Path, "/events") {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})

	routes.RegisterOrderRoutes(r, orderController, webhookController, eventsController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// --- Graceful shutdown ---

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Order Service starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down Order Service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := database.Close(db); err != nil {
		logger.Error("Failed to close database", zap.Error(err))
	}

	logger.Info("Order Service stopped gracefully")
}
