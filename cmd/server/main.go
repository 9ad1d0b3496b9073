package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/m2tx/workspace-assistant/internal/agent"
	"github.com/m2tx/workspace-assistant/internal/config"
	"github.com/m2tx/workspace-assistant/internal/functions"
	"github.com/m2tx/workspace-assistant/internal/handler"
	"github.com/m2tx/workspace-assistant/internal/logging"
	"github.com/m2tx/workspace-assistant/internal/repository"
	"google.golang.org/genai"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stdout, level, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx := context.Background()

	var service handler.ChatService
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY is not set; chat requests will fail until it is configured")
	} else {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return fmt.Errorf("create genai client: %w", err)
		}

		service = agent.New(
			agent.NewChatStarter(client),
			agent.Config{
				Model:     cfg.Model,
				BlockNone: cfg.BlockNone,
				Timeout:   cfg.ProviderTimeout,
			},
			functions.Tools(),
			agent.WithLogger(logger),
		)
	}

	audit, err := openAudit(ctx, cfg)
	if err != nil {
		return err
	}
	if audit != nil {
		logger.Info("exchange audit enabled", "backend", cfg.AuditBackend)
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := audit.Close(closeCtx); err != nil {
				logger.Warn("close exchange audit", "error", err)
			}
		}()
	}

	chat := handler.NewChatHandler(service, audit, cfg.DefaultTimezone, logger)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler.NewRouter(chat, cfg.StaticDir, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "model", cfg.Model, "static_dir", cfg.StaticDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-quit:
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("stopped")
	return nil
}

// openAudit returns nil when auditing is disabled.
func openAudit(ctx context.Context, cfg *config.Config) (repository.ExchangeRepository, error) {
	switch cfg.AuditBackend {
	case config.AuditMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return repository.NewMongoExchangeRepository(connectCtx, cfg.MongoURI, cfg.MongoDB, "exchanges")
	case config.AuditBolt:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return repository.NewBoltExchangeRepository(cfg.BoltPath())
	default:
		return nil, nil
	}
}
