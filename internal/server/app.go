// Package server wires the development inventory API: in-memory stores,
// the search index, authentication and the HTTP listener, with graceful
// shutdown on SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/hackinpovo/inventory/internal/logging"
	"github.com/hackinpovo/inventory/internal/server/api"
	"github.com/hackinpovo/inventory/internal/server/config"
	"github.com/hackinpovo/inventory/internal/server/items"
	"github.com/hackinpovo/inventory/internal/server/users"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	index        *items.SearchIndex
	userService  *users.Service
	itemsService *items.Service
	server       *api.Server
}

func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	index, err := items.NewSearchIndex()
	if err != nil {
		return nil, fmt.Errorf("search index init error: %w", err)
	}

	us := users.NewService(users.NewMemoryRepository(), cfg)
	is := items.NewService(items.NewMemoryRepository(), index, logger)

	return &App{
		config:       cfg,
		logger:       logger,
		index:        index,
		userService:  us,
		itemsService: is,
		server:       api.NewServer(cfg.EndpointAddr, us, is, logger),
	}, nil
}

// Handler exposes the routed API without starting a listener.
func (app *App) Handler() http.Handler {
	return app.server.Handler()
}

func (app *App) Close() error {
	return app.index.Close()
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
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
	app.logger.Info(ctx, "app stopped")
}
