// Package server initializes and runs the Aure API server. It wires the
// Postgres repositories, the Redis session index, the domain services, and
// the HTTP endpoint, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aureapp/aure/internal/logging"
	"github.com/aureapp/aure/internal/server/config"
	"github.com/aureapp/aure/internal/server/documents"
	"github.com/aureapp/aure/internal/server/httpapi"
	"github.com/aureapp/aure/internal/server/metrics"
	"github.com/aureapp/aure/internal/server/records"
	"github.com/aureapp/aure/internal/server/sessionindex"
	"github.com/aureapp/aure/internal/server/shared/db"
	"github.com/aureapp/aure/internal/server/users"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	repos           db.RepositoryManager
	sessions        *sessionindex.RedisIndex
	userService     *users.Service
	recordService   *records.Service
	documentService *documents.Service
	collector       *metrics.Collector
	registry        *prometheus.Registry
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	rm, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	sessions, err := sessionindex.New(ctx, cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis init error: %w", err)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	us := users.NewService(rm.Users(), rm.RefreshTokens(), sessions, cfg)
	rs := records.NewService(rm.Jobs(), rm.Payments(), rm.Agencies())
	ds := documents.NewService(rm.Documents(), cfg)

	return &App{
		config:          cfg,
		logger:          logger,
		repos:           rm,
		sessions:        sessions,
		userService:     us,
		recordService:   rs,
		documentService: ds,
		collector:       collector,
		registry:        registry,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(
		app.config.EndpointAddr,
		app.logger,
		app.userService,
		app.recordService,
		app.documentService,
		app.sessions,
		app.collector,
		metrics.Handler(app.registry),
		app.config.SecretKey,
	)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.userService.StartLimiterCleanup(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.userService.StartTokenCleanup(ctx)
	}()

	wg.Wait()

	if err := app.sessions.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
