package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nfrund/askboard/internal/app"
	"github.com/nfrund/askboard/internal/config"
	"github.com/nfrund/askboard/internal/logging"
	"github.com/nfrund/askboard/internal/server"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
)

func main() {
	logging.New()

	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	injector := app.New(ctx, cfg, afero.NewOsFs())
	defer func() {
		if report := injector.Shutdown(); report != nil && !report.Succeed {
			slog.Error("Shutdown finished with errors", "error", report.Error())
		}
	}()

	srv, err := do.Invoke[*server.Server](injector)
	if err != nil {
		slog.Error("Failed to start application", "error", err)
		return
	}

	if err := srv.Start(ctx, cfg.GetServerAddr()); err != nil {
		slog.Error("Server stopped with error", "error", err)
		return
	}
	slog.Info("Server shut down gracefully")
}
