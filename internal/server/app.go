// Package server initializes and runs the application server: configuration,
// logging, database with migrations, the service layer, and the public HTTP
// endpoint with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/boksu/booksum/internal/logging"
	"github.com/boksu/booksum/internal/server/adapters/cover"
	"github.com/boksu/booksum/internal/server/adapters/generation"
	"github.com/boksu/booksum/internal/server/adapters/speech"
	"github.com/boksu/booksum/internal/server/api"
	"github.com/boksu/booksum/internal/server/audiostore"
	"github.com/boksu/booksum/internal/server/config"
	"github.com/boksu/booksum/internal/server/repositories/repomanager"
	"github.com/boksu/booksum/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler
}

// NewApp wires the full application. A missing database or object store is
// not an error: the app starts degraded and reports availability on /health.
func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewDefault(cfg.Env, cfg.LogFile)

	manager := repomanager.NewPostgresRepositoryManager()

	var db *sql.DB
	if cfg.DatabaseConfigured() {
		var err error
		db, err = sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		if err := manager.RunMigrations(context.Background(), db); err != nil {
			return nil, fmt.Errorf("migration error: %w", err)
		}
	}

	quota := services.NewQuotaService(db, manager)
	library := services.NewLibraryService(db, manager)

	generator := generation.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, logger)

	var store speech.AudioStore
	if cfg.StorageConfigured() {
		store = audiostore.NewS3Store(cfg)
	}
	synthesizer := speech.New(store, logger)

	covers := cover.New(logger)

	summaries := services.NewSummaryService(quota, generator, synthesizer, covers, logger)

	handler := api.NewHandler(cfg, logger, quota, summaries, library, generator)
	router := api.NewRouter(handler, []byte(cfg.SecretKey))

	return &App{config: cfg, logger: logger, db: db, handler: router}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the listener fails. In-flight requests get shutdownTimeout to finish.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting server",
		"addr", app.config.EndpointAddr,
		"env", app.config.Env,
		"database_available", app.config.DatabaseConfigured(),
		"storage_available", app.config.StorageConfigured(),
	)

	app.initSignalHandler(cancelFunc)

	server := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.handler,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "server failed", "error", err.Error())
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "shutdown error", "error", err.Error())
	}

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err.Error())
		}
	}

	app.logger.Info(ctx, "server stopped")
}
