package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/daylog/internal/api"
	"github.com/terraincognita07/daylog/internal/config"
	"github.com/terraincognita07/daylog/internal/db"
	"github.com/terraincognita07/daylog/internal/media"
	"github.com/terraincognita07/daylog/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the journal web server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	time.Local = cfg.Location

	journal, err := openJournal(ctx, cfg)
	if err != nil {
		return fmt.Errorf("journal init failed: %w", err)
	}

	handler, err := api.NewHandler(api.HandlerConfig{
		Journal:      journal,
		Auth:         services.NewStaticCredentials(cfg.Username, cfg.Password),
		SecretKey:    cfg.SecretKey,
		CookieSecure: cfg.CookieSecure,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(cfg, handler)

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("daylog listening on http://0.0.0.0:%s (data: %s, media: %s, tz: %s)", cfg.Port, cfg.DataDir, cfg.MediaBackend, cfg.Location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newApp(cfg *config.Config, handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "daylog",
		DisableStartupMessage: true,
		BodyLimit:             cfg.BodyLimitBytes(),
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func openJournal(ctx context.Context, cfg *config.Config) (*services.JournalService, error) {
	backend, err := newMediaBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	repositories := db.NewRepositories(cfg.DataDir)
	return services.NewJournalService(repositories.Entries, media.NewStore(backend), cfg.Location), nil
}

func newMediaBackend(ctx context.Context, cfg *config.Config) (media.Backend, error) {
	if cfg.MediaBackend == config.MediaBackendS3 {
		backend, err := media.NewS3Backend(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("s3 media backend: %w", err)
		}
		return backend, nil
	}
	return media.NewFileBackend(cfg.DataDir), nil
}
