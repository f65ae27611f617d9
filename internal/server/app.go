// Package server initializes and runs the Aletheia server: it opens the
// database, applies migrations, wires the services and serves the REST API
// until shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/aletheia-net/aletheia/internal/logging"
	"github.com/aletheia-net/aletheia/internal/server/config"
	"github.com/aletheia-net/aletheia/internal/server/httpapi"
	"github.com/aletheia-net/aletheia/internal/server/oracle"
	"github.com/aletheia-net/aletheia/internal/server/repositories/repomanager"
	"github.com/aletheia-net/aletheia/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	oc := oracle.NewHTTPClient(cfg.OracleBaseURL, cfg.OracleModel, cfg.OracleAPIKey, cfg.OracleTimeout)
	cache := oracle.NewMemoryCache()

	us := services.NewUserService(db, rm, oc, cfg)
	qs := services.NewQuestService(db, rm, oc)
	ps := services.NewPostService(db, rm)
	ocs := services.NewOracleService(db, rm, oc, cache)
	ms := services.NewModerationService(db, rm, oc)
	ups := services.NewUploadService(cfg)

	srv := httpapi.NewServer(cfg.EndpointAddrHTTP, logger, cfg.SecretKey, us, qs, ps, ocs, ms, ups)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
