// Command server runs the bookden book recommendation API.
//
// Configuration is layered: built-in defaults, a YAML config file
// (-config flag, BOOKDEN_CONFIG, ./config.yaml, /etc/bookden/config.yaml),
// then BOOKDEN_* environment variable overrides. See pkg/config.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/bookden/bookden/pkg/auth"
	"github.com/bookden/bookden/pkg/config"
	"github.com/bookden/bookden/pkg/keepalive"
	"github.com/bookden/bookden/pkg/objectstore"
	"github.com/bookden/bookden/pkg/storage/memory"
	"github.com/bookden/bookden/pkg/storage/postgres"
	"github.com/bookden/bookden/pkg/transport"
	transporthttp "github.com/bookden/bookden/pkg/transport/http"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Storage.
	var users transport.UserStore
	var books transport.BookStore
	switch cfg.Storage.Type {
	case "postgres":
		store, err := postgres.New(ctx, postgres.Config{
			DSN:            cfg.Storage.Postgres.DSN,
			MaxConns:       cfg.Storage.Postgres.MaxConns,
			MigrateOnStart: cfg.Storage.Postgres.MigrateOnStart,
		})
		if err != nil {
			return fmt.Errorf("creating postgres store: %w", err)
		}
		users, books = store, store
		logger.Info("storage enabled", "type", "postgres")
	default:
		store := memory.NewStore()
		users, books = store, store
		logger.Info("storage enabled", "type", "memory")
	}
	defer users.Close()

	// Cover image storage. Optional: without it, book creation is
	// rejected with a not-implemented error.
	var images transport.ImageStore
	if cfg.Images.Configured() {
		store, err := objectstore.New(ctx, objectstore.Config{
			Endpoint:      cfg.Images.Endpoint,
			Region:        cfg.Images.Region,
			Bucket:        cfg.Images.Bucket,
			AccessKey:     cfg.Images.AccessKey,
			SecretKey:     cfg.Images.SecretKey,
			PublicBaseURL: cfg.Images.PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("creating image store: %w", err)
		}
		images = store
		logger.Info("image storage enabled", "bucket", cfg.Images.Bucket)
	} else {
		logger.Info("image storage disabled")
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	// Keep-alive self-ping for free-tier hosting.
	if cfg.KeepAlive.URL != "" {
		pinger := keepalive.New(cfg.KeepAlive.URL, cfg.KeepAlive.Interval, logger)
		pinger.Start()
		defer pinger.Stop()
	}

	metricsPath := ""
	if cfg.Observability.Metrics.Enabled {
		metricsPath = cfg.Observability.Metrics.Path
	}

	srv := transporthttp.NewServer(users, books, images, tokens,
		transporthttp.WithAddr(":"+strconv.Itoa(cfg.Server.Port)),
		transporthttp.WithMaxBodySize(cfg.Server.MaxBodySize),
		transporthttp.WithUploadTimeout(cfg.Server.UploadTimeout),
		transporthttp.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		transporthttp.WithMetricsPath(metricsPath),
		transporthttp.WithLogger(logger),
	)

	return srv.ListenAndServe()
}
