package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/M-Smaran/test-mcp-server/internal/config"
	"github.com/M-Smaran/test-mcp-server/internal/log"
	"github.com/M-Smaran/test-mcp-server/internal/server"
	"github.com/M-Smaran/test-mcp-server/internal/storage"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.New(log.DefaultConfig()).Error("Failed to load configuration", log.FieldError, err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logger := log.New(log.Config{Level: level, Component: log.ComponentApp})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage failures here are fatal: a store that cannot initialize or
	// accept the canary write makes every operation meaningless.
	store, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		logger.Error("Failed to initialize expense store",
			log.FieldError, err, log.FieldDBPath, cfg.DBPath)
		os.Exit(1)
	}
	defer store.Close()

	srv := server.New(cfg, store, logger)

	logger.Info("Starting expense tracker",
		log.FieldOperation, log.OpStartup,
		log.FieldTransport, cfg.Transport,
		log.FieldDBPath, cfg.DBPath)

	switch cfg.Transport {
	case config.TransportStdio:
		if err := srv.ServeStdio(); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Server error", log.FieldError, err)
			os.Exit(1)
		}
	default:
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return srv.ServeHTTP(gctx, cfg.HTTPAddr())
		})
		if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", log.FieldError, err, log.FieldPort, cfg.Port)
			os.Exit(1)
		}
	}

	logger.Info("Server stopped gracefully")
}
