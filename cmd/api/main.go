package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"advidly/internal/app/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildAPI()
	if err != nil {
		slog.Error("bootstrap failed", "error", err.Error())
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		app.Logger.Error("app run failed",
			"event", "app_run_failed",
			"module", "cmd/api",
			"layer", "cmd",
			"error", err.Error(),
		)
		os.Exit(1)
	}
}
