package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docshelf/docs"
	"docshelf/internal/config"
	"docshelf/internal/database"
	"docshelf/internal/database/migration"
	handlers "docshelf/internal/http/handler"
	"docshelf/internal/http/middleware"
	"docshelf/internal/kv"
	kvpostgres "docshelf/internal/kv/postgres"
	kvsqlite "docshelf/internal/kv/sqlite"
	"docshelf/internal/logging"
	"docshelf/internal/otel"
	"docshelf/internal/service"
	"docshelf/internal/storage"
)

// @title Docshelf API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from defaults, optional TOML file, and environment
	// variables (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err.Error())
		os.Exit(1)
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing degrades to noop when no collector is reachable
	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Error("failed to initialize tracing", "error", err.Error())
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error("tracing shutdown failed", "error", err.Error())
		}
	}()

	// Pick the key-value backend holding the library state
	var (
		store kv.Store
		db    *sql.DB
	)
	switch cfg.KV.Driver {
	case "memory":
		store = kv.NewMemory()
	case "sqlite":
		db, err = database.NewSQLite(cfg.KV.SQLitePath)
		if err != nil {
			log.Error("failed to open sqlite database", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()
		store = kvsqlite.NewSQLiteStore(db)
	case "postgres":
		db, err = database.NewPostgres(cfg.Database)
		if err != nil {
			log.Error("failed to connect to database", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			log.Error("failed to migrate database", "error", err.Error())
			os.Exit(1)
		}
		store = kvpostgres.NewPostgresStore(db)
	default:
		log.Error("unknown kv driver", "driver", cfg.KV.Driver)
		os.Exit(1)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Error("failed to initialize object storage", "error", err.Error())
		os.Exit(1)
	}

	libSvc := service.NewLibraryService(store, log, cfg.Library.MaxRecent)
	docSvc := service.NewDocumentService(objStore, libSvc)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Metrics live on their own registry so tests and restarts never trip
	// duplicate registration
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Error("failed to register metrics", "error", err.Error())
		os.Exit(1)
	}

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, log, docSvc, libSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server stopped", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("shutdown failed", "error", err.Error())
	}
}
