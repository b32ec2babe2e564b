package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/ai"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/apps"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/apps/diary"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/apps/helpchat"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/apps/summary"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/config"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/database"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/logging"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/routes"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/services"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/vocabulary"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/webhook"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	vocab, err := vocabulary.Load(cfg.VocabularyPath)
	if err != nil {
		slog.Error("failed to load emotion vocabulary", "path", cfg.VocabularyPath, "error", err)
		os.Exit(1)
	}
	loc := cfg.Location()
	slog.Info("vocabulary loaded", "tags", len(vocab.Tags()), "timezone", loc.String())

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}

	if err := database.MigrateShared(); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.StdoutHandler(os.Stdout),
		pgLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)

	// Outbound integrations
	gateway := ai.NewClient(ai.Config{
		BaseURL:          cfg.AIGatewayURL,
		APIKey:           cfg.AIGatewayKey,
		Model:            cfg.AIModel,
		Timeout:          cfg.AITimeout,
		StructuredOutput: cfg.AIStructuredOutput,
		Tags:             vocab.Tags(),
	})
	if !gateway.Configured() {
		slog.Warn("AI_GATEWAY_KEY not set, entries will be stored without analysis")
	}
	notifier := webhook.NewNotifier(cfg.SummaryWebhookURL, cfg.WebhookTimeout)

	authService := services.NewAuthService(database.DB, cfg)

	plugins := []apps.Plugin{
		diary.New(gateway, vocab, loc),
		summary.New(gateway, notifier, loc),
		helpchat.New(gateway),
	}

	for _, p := range plugins {
		if models := p.Models(); len(models) > 0 {
			if err := database.MigrateModels(models); err != nil {
				slog.Error("plugin migration failed", "plugin", p.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("plugin migrated", "plugin", p.ID(), "models", len(models))
		}
	}

	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(gateway.Configured(), notifier.Enabled())

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, database.DB, authHandler, healthHandler, plugins)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Summary webhooks already accepted still get their single attempt
	notifier.Wait()

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error",
			"method", c.Method(), "path", c.Path(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"error", err.Error())
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
