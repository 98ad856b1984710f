package cmd

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"storage-gateway/core/config"
	"storage-gateway/core/loader"
	"storage-gateway/core/logger"
	"storage-gateway/core/metrics"
	"storage-gateway/core/middleware/auth"
	"storage-gateway/core/middleware/rayid"
	"storage-gateway/core/storage"

	"storage-gateway/feature/files"
	"storage-gateway/feature/health"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "storage-gateway/docs/swagger"
)

// @title Storage Gateway API
// @version 1.0
// @description Driver-agnostic file storage over local disk, S3 compatible stores and Google Cloud Storage.
// @host localhost:4000
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the storage gateway server",
	Long:  `Configures the storage driver, then starts the HTTP server with all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := loadConfig()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Configure Storage (once, before serving)
		reg := metrics.NewRegistry()
		opts := []storage.Option{}
		if cfg.Metrics.Enabled {
			opts = append(opts, storage.WithMetrics(metrics.NewStorage(reg)))
		}
		store, err := openStorage(cmd.Context(), storageConfig(cfg), logg, opts...)
		if err != nil {
			logg.Fatal("Failed to configure storage", zap.Error(err))
		}
		defer store.Close()

		app := newApp(cfg, logg, store, reg)

		// 4. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.String("driver", store.DriverName()))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 5. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	},
}

// newApp builds the Fiber application around an already configured store.
func newApp(cfg *config.Config, logg *zap.Logger, store *storage.Storage, reg *prometheus.Registry) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             cfg.Server.BodyLimitMB * 1024 * 1024,
	})

	// Middleware Registration
	app.Use(recover.New())
	// RayID must come before logging so every line carries it
	app.Use(rayid.New())
	app.Use(requestLogger(logg))
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.Server.CORSOrigins}))

	if cfg.Metrics.Enabled {
		app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(metrics.Handler(reg)))
	}

	prefix := cfg.Server.Prefix()
	api := app.Group(prefix)

	// Swagger Documentation (Public)
	api.Get("/docs/*", swagger.HandlerDefault)

	// Auth protects the API group only; the storage mount, site and liveness stay public
	liveness := strings.TrimSuffix(prefix, "/") + "/health"
	api.Use(auth.New(auth.Config{
		ApiKey: cfg.Server.ApiKey,
		Next: func(c *fiber.Ctx) bool {
			return strings.TrimSuffix(c.Path(), "/") == liveness
		},
	}))

	filesFeature := files.NewFeature(store, logg)

	mgr := loader.NewManager(logg)
	mgr.Register(filesFeature)
	mgr.Register(health.NewFeature(store, logg))
	if err := mgr.LoadAll(api); err != nil {
		logg.Fatal("Failed to load features", zap.Error(err))
	}

	filesFeature.Mount(app, cfg.Server.Mount())

	if info, err := os.Stat(cfg.Server.SiteDir); err == nil && info.IsDir() {
		app.Static("/", cfg.Server.SiteDir, fiber.Static{Index: "index.html"})
	} else if cfg.Server.SiteDir != "" {
		logg.Debug("Site directory not found, skipping", zap.String("dir", cfg.Server.SiteDir))
	}

	return app
}

func requestLogger(logg *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		start := time.Now()
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		l.Info("Request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.String("ip", c.IP()),
			zap.Duration("took", time.Since(start)),
		)
		return err
	}
}

func init() {
	RootCmd.AddCommand(startCmd)
}
