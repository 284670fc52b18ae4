package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
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
	"go.uber.org/zap"

	"scriptum/docs"
	"scriptum/internal/config"
	"scriptum/internal/database"
	"scriptum/internal/database/migration"
	"scriptum/internal/google"
	"scriptum/internal/google/tokenstore"
	handlers "scriptum/internal/http/handler"
	"scriptum/internal/http/middleware"
	"scriptum/internal/logger"
	"scriptum/internal/otel"
	"scriptum/internal/repository/postgres"
	"scriptum/internal/service"
	"scriptum/internal/storage"
)

// @title Scriptum Document Manager API
// @version 1.0
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	time.Local = cfg.Location()

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	defer zap.ReplaceGlobals(log)()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.NewPostgres(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO, log)
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}

	rdb, err := database.NewRedis(cfg.Redis, log)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer rdb.Close()

	auth, err := google.NewAuth(cfg.Google, tokenstore.NewRedis(rdb), log)
	if err != nil {
		return fmt.Errorf("init google auth: %w", err)
	}

	docsReader := google.NewDocs(auth, cfg.Google.ApplicationName, cfg.Google.DocsCacheTTL, log)
	auth.OnLogout(docsReader.Flush)

	docRepo := postgres.NewDocumentPostgres(db)
	services := handlers.Services{
		Documents:  service.NewDocumentService(objStore, docRepo, log),
		Categories: service.NewCategoryService(postgres.NewCategoryPostgres(db), docRepo, log),
		Tags:       service.NewTagService(postgres.NewTagPostgres(db), docRepo, log),
		Drive:      service.NewDriveService(auth, google.NewDrive(auth, cfg.Google.ApplicationName), log),
		Docs:       service.NewDocsService(docsReader, log),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    32 * 1024 * 1024,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	handlers.RegisterRoutes(app, db, services)

	registerSwagger(app, cfg.SwaggerHost)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		log.Info("shutting down")
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}

// registerSwagger fixes the advertised host before serving the UI. An empty
// host makes the UI call the API on the origin it was loaded from.
func registerSwagger(app *fiber.App, host string) {
	docs.SwaggerInfo.Host = host
	docs.SwaggerInfo.Schemes = nil
	app.Get("/swagger/*", swagger.HandlerDefault)
}
