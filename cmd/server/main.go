// @title           Staging Console API
// @version         1.0.0
// @description     Submission lifecycle and review console for the photo-staging service: deliveries, quotes, checkout, review, chat badges and live updates.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"staging-console-backend/docs"
	"staging-console-backend/internal/bootstrap"
	"staging-console-backend/internal/config"
	"staging-console-backend/internal/database"
	"staging-console-backend/internal/handlers"
	"staging-console-backend/internal/metrics"
	"staging-console-backend/internal/middleware"
	"staging-console-backend/internal/services"
	"staging-console-backend/internal/sse"
	"staging-console-backend/internal/viewer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := bootstrap.InitLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	ctx := context.Background()

	if cfg.StoreBackend == config.StorePostgres {
		runMigrations(ctx, cfg.DatabaseURL, logger)
	}

	st, closeStore, err := bootstrap.OpenStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer closeStore()

	blobs, err := bootstrap.OpenBlobs(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open blob storage", zap.Error(err))
	}

	markers, closeMarkers := bootstrap.OpenMarkers(ctx, cfg, logger)
	defer closeMarkers()

	checkoutClient := bootstrap.NewCheckout(cfg)
	if checkoutClient == nil {
		logger.Warn("CHECKOUT_API_BASE_URL not set, checkout is disabled")
	}

	m := metrics.New()
	hub := sse.NewHub(logger)
	svc := services.New(services.Deps{
		Store:     st,
		Blobs:     blobs,
		Checkout:  checkoutClient,
		Markers:   markers,
		Publisher: hub,
		Metrics:   m,
		Logger:    logger,
	})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/v1/stream", "/metrics"})))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(m.Handler()))

	handlers.New(cfg, svc, hub, m, viewer.NewDownloader(nil), logger).Register(router, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
		// no WriteTimeout: /stream connections are long-lived
	}

	go func() {
		logger.Info("Server starting",
			zap.String("port", cfg.Port),
			zap.String("store", cfg.StoreBackend),
			zap.String("blobs", cfg.BlobBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func runMigrations(ctx context.Context, dbURL string, logger *zap.Logger) {
	migrator, err := database.NewMigrator(dbURL, logger)
	if err != nil {
		logger.Warn("Failed to initialize migrator", zap.Error(err))
		return
	}
	defer migrator.Close()

	applied, err := migrator.Run(ctx)
	if err != nil {
		logger.Warn("Migration failed", zap.Error(err))
		return
	}
	logger.Info("Migrations completed", zap.Strings("applied", applied))
}
