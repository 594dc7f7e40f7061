package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dpaiva/lojinha-backend/config"
	"github.com/dpaiva/lojinha-backend/internal/app/controller"
	"github.com/dpaiva/lojinha-backend/internal/app/repository"
	"github.com/dpaiva/lojinha-backend/internal/app/service"
	"github.com/dpaiva/lojinha-backend/internal/catalog"
	"github.com/dpaiva/lojinha-backend/internal/db"
	"github.com/dpaiva/lojinha-backend/internal/middleware"
	"github.com/dpaiva/lojinha-backend/internal/router"
	"github.com/dpaiva/lojinha-backend/internal/scheduler"
	"github.com/dpaiva/lojinha-backend/internal/storage"
	"github.com/dpaiva/lojinha-backend/pkg/logger"
	"github.com/dpaiva/lojinha-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Lojinha Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis (cart persistence)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Load the catalog feed snapshot
	productRepo := repository.NewProductRepository(db.GetDB())
	products, err := productRepo.FindAll()
	if err != nil {
		logger.Fatal("Failed to load catalog", err)
	}
	feed := catalog.NewFeed(products)
	logger.Info("Catalog feed loaded", map[string]interface{}{
		"count": feed.Len(),
	})

	// Cart persistence
	kv := storage.NewRedisKV(redis.GetClient())
	cartStore := storage.NewCartStore(kv, cfg.Catalog.CartTTL)

	// Initialize services
	catalogService := service.NewCatalogService(feed)
	cartService := service.NewCartService(cartStore, feed)
	reportService := service.NewReportService(feed)

	// Initialize controllers
	catalogController := controller.NewCatalogController(catalogService, reportService)
	cartController := controller.NewCartController(cartService)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(
		cfg.Session.Secret,
		cfg.Session.CookieName,
		cfg.Session.TTL,
	)

	// Start the catalog refresh scheduler
	catalogScheduler := scheduler.NewCatalogScheduler(productRepo, feed, cfg.Catalog.RefreshSpec)
	if err := catalogScheduler.Start(); err != nil {
		logger.Fatal("Failed to start catalog scheduler", err)
	}
	defer catalogScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		catalogController,
		cartController,
		sessionMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
