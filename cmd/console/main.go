package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vendorsync/procurement-console/internal/console"
	"github.com/vendorsync/procurement-console/internal/console/metrics"
	"github.com/vendorsync/procurement-console/internal/core/ports"
	"github.com/vendorsync/procurement-console/internal/core/service"
	"github.com/vendorsync/procurement-console/internal/infrastructure/authapi"
	"github.com/vendorsync/procurement-console/internal/infrastructure/config"
	filestore "github.com/vendorsync/procurement-console/internal/infrastructure/store/file"
	redisstore "github.com/vendorsync/procurement-console/internal/infrastructure/store/redis"
	"github.com/vendorsync/procurement-console/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "console:", err)
		os.Exit(1)
	}
}

// run keeps every failure on the return path so deferred cleanup (store
// connections, signal handling) always executes.
func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	var store ports.CredentialStore
	switch cfg.Store.Backend {
	case "redis":
		rs, err := redisstore.Open(ctx, redisstore.Config{
			Addr: cfg.Store.RedisAddr,
			DB:   cfg.Store.RedisDB,
		}, log)
		if err != nil {
			return err
		}
		defer rs.Close()
		store = rs
	default:
		store = filestore.New(cfg.Store.FilePath, log)
	}

	gateway := authapi.New(cfg.API.BaseURL, cfg.API.Timeout, log)
	sessions := service.NewSessionManager(gateway, store, log)

	// One restore at startup, storage only. A stored token is trusted until
	// the backend rejects it.
	snap := sessions.Restore(ctx)
	if snap.IsAuthenticated() {
		metrics.SessionRestoresTotal.WithLabelValues("authenticated").Inc()
		log.Info().
			Str("email", snap.Identity.Email).
			Str("role", string(snap.Identity.Role)).
			Msg("session restored")
	} else {
		metrics.SessionRestoresTotal.WithLabelValues("anonymous").Inc()
		log.Info().Msg("no stored session, starting anonymous")
	}

	e := console.NewRouter(sessions)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("console listening")
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("console server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
	return nil
}
