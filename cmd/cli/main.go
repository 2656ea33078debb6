package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/greensnap-app/greensnap-cli/internal/buildinfo"
	"github.com/greensnap-app/greensnap-cli/internal/client/api"
	"github.com/greensnap-app/greensnap-cli/internal/client/cli"
	"github.com/greensnap-app/greensnap-cli/internal/client/config"
	"github.com/greensnap-app/greensnap-cli/internal/client/credstore"
	"github.com/greensnap-app/greensnap-cli/internal/client/session"
	"github.com/greensnap-app/greensnap-cli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	store, err := credstore.Open(ctx, cfg.DataDir, logger.With("component", "credstore"))
	if err != nil {
		log.Fatalf("error opening credential store: %v", err)
	}
	defer store.Close()

	apiClient := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, logger.With("component", "api"))
	sess := session.NewService(apiClient, store, logger)

	app := cli.NewApp(cfg, sess, apiClient, logger)
	app.Run(ctx)
}
