package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rohits-web03/chainvault/internal/api"
	"github.com/rohits-web03/chainvault/internal/api/handlers"
	"github.com/rohits-web03/chainvault/internal/app"
	"github.com/rohits-web03/chainvault/internal/config"
	"github.com/rohits-web03/chainvault/internal/identity"
)

func main() {
	cfg := config.Envs

	logger, err := config.SetupLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialise", zap.Error(err))
	}

	h := &handlers.Handler{
		Views:     a.Views,
		Shares:    a.Shares,
		Addrs:     identity.Addresses,
		Nonces:    identity.NewNonceStore(),
		ChainID:   cfg.Ledger.ChainID,
		JWTSecret: cfg.JWTSecret,
		Secure:    cfg.IsProduction(),
	}
	mux := api.SetupRouter(h, a.Metrics, cfg.CorsConfig)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: mux,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout: 5 * time.Second,
		// Contract reads can take a few seconds on public RPC endpoints.
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("Shutdown failed", zap.Error(err))
		}
	}()

	zap.L().Info("Starting ChainVault server",
		zap.String("port", cfg.Port),
		zap.String("ledger", cfg.Ledger.Backend),
		zap.String("blobs", cfg.BlobBackend),
	)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zap.L().Fatal("Could not listen", zap.String("port", cfg.Port), zap.Error(err))
	}
}
