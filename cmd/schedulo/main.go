package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/chrisdamba/schedulo/internal/cli"
	"github.com/chrisdamba/schedulo/internal/form"
	"github.com/chrisdamba/schedulo/internal/logging"
	"github.com/chrisdamba/schedulo/pkg/config"
	"github.com/chrisdamba/schedulo/pkg/schedulo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to load .env", "err", err)
		os.Exit(1)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		slog.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	log := logging.New(os.Stderr, cfg.Log.Level)

	client := schedulo.NewClient(
		schedulo.WithBaseURL(cfg.Store.BaseURL),
		schedulo.WithHTTPClient(&http.Client{Timeout: cfg.Store.Timeout}),
		schedulo.WithLogger(log),
	)
	confirmer := cli.NewPromptConfirmer(os.Stdin, os.Stdout)
	ctrl := form.NewController(client, confirmer, form.WithLogger(log))

	if err := cli.NewRunner(ctrl, confirmer, os.Stdout).Run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			os.Stderr.WriteString(err.Error() + "\n")
			os.Exit(2)
		}
		log.Debug("command failed", "err", err)
		os.Exit(1)
	}
}
