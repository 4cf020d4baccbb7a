package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/maternalrisk/backend/internal/bootstrap"
	"github.com/maternalrisk/backend/internal/config"
	"github.com/maternalrisk/backend/internal/delivery/http"
	"github.com/maternalrisk/backend/internal/logging"
	"github.com/maternalrisk/backend/internal/metrics"
	"github.com/maternalrisk/backend/internal/service"
)

var version = "v0.1.0-dev"

func main() {
	// Configuration
	cfg, foundDotEnv, err := config.Load()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("Invalid logging configuration: %v", err)
	}
	if !foundDotEnv {
		log.Info("No .env file found, using system environment")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Dependency Injection: dataset source and classifier
	source, err := bootstrap.NewSource(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Could not configure indicator source")
	}
	defer source.Close()

	classifier, err := bootstrap.NewClassifier(cfg)
	if err != nil {
		log.WithError(err).Fatal("Could not configure classifier")
	}

	// Dependency Injection: Services
	store := service.NewDatasetStore(source, log, m)
	riskSvc := service.NewRiskService(classifier, store, log, m)

	if cfg.PreloadDataset {
		if _, err := store.Load(ctx); err != nil {
			log.WithError(err).Warn("Indicator dataset not loaded at startup, will retry on first request")
		}
	}

	checks := map[string]http.HealthCheck{"indicators": store.Ready}
	if source.Health != nil {
		checks["dataset"] = source.Health
	}
	if classifier.Health != nil {
		checks["classifier"] = classifier.Health
	}
	handler := http.NewHandler(riskSvc, checks, version, log)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Maternal Risk API " + version,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second + cfg.MLTimeout,
		ErrorHandler: http.ErrorHandler(log),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
		Output: log.Writer(),
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	http.SetupRoutes(app, handler, m, registry)

	// Graceful shutdown
	go func() {
		log.WithFields(logrus.Fields{"port": cfg.Port, "env": cfg.Env}).Info("Server starting")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Fatal("Server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.WithError(err).Warn("Server forced to shutdown")
	}
	log.Info("Server exited gracefully")
}
