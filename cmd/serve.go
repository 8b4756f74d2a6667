package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"imgdiff/core/database"
	"imgdiff/core/loader"
	"imgdiff/core/logger"
	"imgdiff/core/metrics"
	"imgdiff/core/middleware/auth"
	"imgdiff/core/middleware/rayid"
	"imgdiff/core/storage"
	"imgdiff/feature/batch"
	"imgdiff/feature/history"
	"imgdiff/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var serveStorage storageFlags

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the HTTP server exposing batch runs (POST /batch), run history
(GET /history) when a database is configured, batch root integrity checks
(GET /integrity), health and Prometheus metrics.`,
	RunE: runServe,
}

func init() {
	serveStorage.register(serveCmd.Flags())
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	serveStorage.apply(cmd.Flags(), &cfg.Storage)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	// Run history is optional
	var db *gorm.DB
	if cfg.Database.Enabled {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to history database")
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	observer, err := metrics.NewPrometheusObserver("imgdiff", registry)
	if err != nil {
		return err
	}

	hist := history.NewFeature(db, logg)
	svc := batch.NewService(storage.NewFactory(cfg.Storage), cfg.Diff, cwd, logg).WithObserver(observer)
	if store := hist.Store(); store != nil {
		if err := store.Migrate(); err != nil {
			logg.Warn("History migration failed", zap.Error(err))
		}
		svc.WithRecorder(store)
	}

	mgr := loader.NewManager()
	mgr.Register(batch.NewFeature(svc, cfg.Server.Allows))
	mgr.Register(integrity.NewFeature(integrity.NewService(storage.NewFactory(cfg.Storage), cwd, logg), cfg.Server.Allows))
	mgr.Register(hist)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID must be first to trace everything
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/health", "/metrics"}}))

	metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	app.Get("/metrics", func(c *fiber.Ctx) error {
		metricsHandler(c.Context())
		return nil
	})

	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return fmt.Errorf("failed to load features: %w", err)
	}
	logg.Info("Features loaded", zap.Strings("features", loaded))

	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("port", cfg.Server.Port))
		errCh <- app.Listen(cfg.Server.Address())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	logg.Info("Shutting down server...")
	return app.Shutdown()
}
