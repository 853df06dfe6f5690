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

	"golang.org/x/sync/errgroup"

	"github.com/fintrace/fintrace-backend/internal/app"
	"github.com/fintrace/fintrace-backend/internal/observability"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown := observability.InitOTel(ctx, a.Log, observability.OtelConfig{
		ServiceName: "fintrace",
		Environment: a.Cfg.Environment,
		Version:     a.Cfg.Version,
	})

	srv := &http.Server{
		Addr:              a.Cfg.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("Server listening", "addr", a.Cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.Log.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Log.Warn("Server shutdown", "error", err)
		}
		if err := otelShutdown(shutdownCtx); err != nil {
			a.Log.Warn("OTel shutdown", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		a.Log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
