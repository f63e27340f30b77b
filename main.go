package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreybb/tasker/api"
	"github.com/coreybb/tasker/config"
	"github.com/coreybb/tasker/datastore"
	"github.com/coreybb/tasker/logging"
	rh "github.com/coreybb/tasker/route-handlers"
	"github.com/coreybb/tasker/validators"
	"github.com/coreybb/tasker/webutil"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("Config load failed", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := datastore.Open(ctx, cfg.Database.Dialect, cfg.Database.URL, cfg.Database.Pool())
	if err != nil {
		logger.Error("Database setup failed", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	if cfg.Database.AutoMigrate {
		if err := conn.EnsureSchema(ctx); err != nil {
			logger.Error("Schema setup failed", "error", err)
			os.Exit(1)
		}
		logger.Info("Schema ensured", "driver", string(cfg.Database.Dialect))
	}

	validator := validators.New()
	hasher := webutil.NewBcryptHasher(cfg.BcryptCost)

	userHandler := rh.NewUserHandler(datastore.NewUserRepository(conn), validator, hasher)
	folderHandler := rh.NewFolderHandler(datastore.NewFolderRepository(conn), validator)
	taskHandler := rh.NewTaskHandler(datastore.NewTaskRepository(conn), validator)

	router := api.SetupRoutes(userHandler, folderHandler, taskHandler, api.Options{
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
		DB:             conn,
	})

	startServer(ctx, cfg, logger, router)
}

func startServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, router http.Handler) {
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done() // Block until signal received
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}

	logger.Info("Server gracefully stopped")
}
