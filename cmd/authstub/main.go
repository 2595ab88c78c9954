// Command authstub runs a local stand-in for the VendorSync authentication
// API, so the console can be developed without the production backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vendorsync/procurement-console/internal/infrastructure/config"
	"github.com/vendorsync/procurement-console/internal/stubauth"
	"github.com/vendorsync/procurement-console/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "authstub:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := stubauth.ConnectMongo(ctx, stubauth.MongoConfig{
		URI:      cfg.Stub.MongoURI,
		Database: cfg.Stub.MongoDB,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	repo := stubauth.NewMongoUserRepository(db)
	service := stubauth.NewService(repo, cfg.Stub.JWTSecret, cfg.Stub.TokenTTL)
	e := stubauth.NewRouter(service)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Stub.Port).Msg("auth stub listening")
		errCh <- e.Start(":" + cfg.Stub.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("auth stub server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
	return nil
}
