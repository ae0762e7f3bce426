// main is the entry point of the Students API application.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open the configured document store (firestore, mongo, sqlite, memory)
//  4. Register all HTTP routes
//  5. Start the HTTP server in a separate goroutine
//  6. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, close the store, exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/students-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/students-api
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aanand-mishra/students-docstore-api/internal/config"
	"github.com/aanand-mishra/students-docstore-api/internal/http/routes"
	"github.com/aanand-mishra/students-docstore-api/internal/storage"
	"github.com/aanand-mishra/students-docstore-api/internal/storage/firestore"
	"github.com/aanand-mishra/students-docstore-api/internal/storage/memory"
	"github.com/aanand-mishra/students-docstore-api/internal/storage/mongo"
	"github.com/aanand-mishra/students-docstore-api/internal/storage/sqlite"
	"github.com/aanand-mishra/students-docstore-api/internal/validation"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Handlers log through the package-level slog functions, so the
	// configured logger is installed as the default.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting students-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// The store is created once here and handed to every handler.
	store, err := openStorage(context.Background(), cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("driver", cfg.Storage.Driver),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storage initialised",
		slog.String("driver", cfg.Storage.Driver),
		slog.String("collection", cfg.Storage.Collection))

	// ── 4. Register HTTP Routes ───────────────────────────────────────────
	router := routes.New(store, validation.New())

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router,

		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	// ── 5. Start Server in a Goroutine ────────────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed after Shutdown();
		// that is the normal exit path, not an error.
		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 6. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	exitCode := 0
	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		exitCode = 1
	}

	// Close the store only after in-flight requests are done with it.
	if err := store.Close(); err != nil {
		log.Error("failed to close storage", slog.String("error", err.Error()))
		exitCode = 1
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
	log.Info("server stopped gracefully")
}

// openStorage builds the backend named by cfg.Storage.Driver.
func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverFirestore:
		return firestore.New(ctx, cfg)
	case config.DriverMongo:
		return mongo.New(ctx, cfg)
	case config.DriverSQLite:
		return sqlite.New(cfg)
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
