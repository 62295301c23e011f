// Command server runs the SysTok clip feed HTTP API.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/systok/clip-feed-go/internal/config"
	"github.com/systok/clip-feed-go/internal/db"
	"github.com/systok/clip-feed-go/internal/db/repository"
	"github.com/systok/clip-feed-go/internal/handler"
	"github.com/systok/clip-feed-go/internal/middleware"
	"github.com/systok/clip-feed-go/internal/service"
	"github.com/systok/clip-feed-go/internal/validation"
	"github.com/systok/clip-feed-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck // stdout sync errors are harmless

	if cfg.Database.URL == "" {
		logger.Log.Fatal("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()

	pool, err := db.NewPool(ctx, cfg.Database.URL, db.PoolSettings{
		MaxConns:        int32(cfg.Database.MaxConnections),
		MinConns:        int32(cfg.Database.MinConnections),
		MaxConnLifetime: cfg.Database.MaxLifetime,
		MaxConnIdleTime: cfg.Database.MaxIdleTime,
	})
	if err != nil {
		logger.Log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer pool.Close()

	logger.Log.Info("database connection established",
		zap.Int32("maxConns", pool.Config().MaxConns),
	)

	clipRepo := repository.NewClipRepository(pool)

	// Engagement events are optional: without a broker configured the
	// gateway serves requests and simply skips publishing.
	var publisher service.EventPublisher
	if cfg.RabbitMQ.Enabled() {
		rmq, err := service.NewRabbitMQPublisher(cfg.RabbitMQ)
		if err != nil {
			logger.Log.Warn("failed to initialize RabbitMQ publisher, engagement events will not be emitted",
				zap.Error(err),
			)
		} else {
			publisher = rmq
			defer rmq.Close() //nolint:errcheck // best effort on shutdown
			logger.Log.Info("RabbitMQ publisher initialized")
		}
	}

	clipService := service.NewClipService(clipRepo, publisher, validation.New())

	clipHandler := handler.NewClipHandler(clipService)
	healthHandler := handler.NewHealthHandler(pool, cfg.Database.URL != "")

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		middleware.CORS(),
		middleware.Metrics(),
	)

	router.GET("/", healthHandler.Root)
	router.GET("/test", healthHandler.Diagnostics)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/clips", clipHandler.ListClips)
		api.POST("/clips", clipHandler.CreateClip)
		api.POST("/like", clipHandler.Like)
		api.POST("/bookmark", clipHandler.Bookmark)
		api.POST("/seed", clipHandler.Seed)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log.Info("server starting", zap.Int("port", cfg.Server.Port))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Log.Fatal("server error", zap.Error(err))
	case sig := <-shutdown:
		logger.Log.Info("shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Log.Error("graceful shutdown failed", zap.Error(err))
			if err := server.Close(); err != nil {
				logger.Log.Error("failed to close server", zap.Error(err))
			}
			os.Exit(1)
		}

		logger.Log.Info("server stopped gracefully")
	}
}
