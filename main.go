package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ixstats/engine/backend"
	"github.com/ixstats/engine/ixstats"
	"github.com/ixstats/engine/ixstats/importer"
	"github.com/ixstats/engine/ixstats/logger"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	// Initialize custom logger
	customHandler := logger.NewHandler("IxStats")
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting IxStats Engine",
		slog.String("version", version),
		slog.String("commit", commit))

	shouldImport := flag.Bool("import-legacy", false, "Import legacy MongoDB data on startup")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := ixstats.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Configuration loaded successfully")

	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	app := ixstats.New(*cfg, version, commit)
	if err := app.Setup(ctx); err != nil {
		slog.Error("Engine setup failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer app.Shutdown()

	slog.Info("Database connected successfully",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	if *shouldImport {
		if err := runLegacyImport(ctx, app, cfg); err != nil {
			slog.Error("Legacy import failed", slog.Any("error", err))
			os.Exit(-1)
		}
	}

	app.Start()
	slog.Info("Auction expiry scheduler started")

	server := backend.NewServer(app, version, commit)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		if err := server.Listen(address); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
			os.Exit(-1)
		}
	}()

	slog.Info("Engine is running. Press CTRL-C to exit.",
		slog.String("address", address))
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down engine...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}
}

// runLegacyImport seeds Postgres from the legacy MongoDB export, then
// disconnects. One-shot; conflicting rows are skipped.
func runLegacyImport(ctx context.Context, app *ixstats.App, cfg *ixstats.Config) error {
	if cfg.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri is not configured")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return fmt.Errorf("failed to connect to legacy store: %w", err)
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			slog.Warn("Failed to disconnect from legacy store", slog.Any("error", err))
		}
	}()

	imp := importer.New(app.DB.BunDB(), client.Database(cfg.Mongo.Database))
	stats, err := imp.ImportAll(ctx)
	if err != nil {
		return err
	}

	slog.Info("Legacy data imported",
		slog.Int("synergies", stats.Synergies),
		slog.Int("nations", stats.Nations))
	return nil
}
