// Package api exposes the inventory over HTTP+JSON under /api.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hackinpovo/inventory/internal/logging"
	"github.com/hackinpovo/inventory/internal/server/items"
	"github.com/hackinpovo/inventory/internal/server/users"
	"github.com/hackinpovo/inventory/internal/validation"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	addr      string
	router    *chi.Mux
	users     *users.Service
	items     *items.Service
	validator *validation.Validator
	metrics   *metrics
	logger    logging.Logger
}

func NewServer(addr string, us *users.Service, is *items.Service, logger logging.Logger) *Server {
	s := &Server{
		addr:      addr,
		router:    chi.NewRouter(),
		users:     us,
		items:     is,
		validator: validation.New(),
		metrics:   newMetrics(),
		logger:    logger.With("module", "api"),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.metrics.middleware)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	s.router.Handle("/metrics", s.metrics.handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.handleLogin)
			r.Post("/register", s.handleRegister)
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", s.handleListItems)
			r.Get("/search", s.handleSearchItems)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/", s.handleCreateItem)
				r.Put("/{id}", s.handleUpdateItem)
				r.Patch("/{id}/quantity", s.handleSetQuantity)
				r.Patch("/{id}/usedquantity", s.handleSetUsed)
				r.Delete("/{id}", s.handleDeleteItem)
			})
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", s.handleListTags)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/", s.handleCreateTag)
				r.Delete("/{id}", s.handleDeleteTag)
			})
		})
	})
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.Serve(ctx, lis)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "HTTP server started", "addr", lis.Addr().String())
		errCh <- srv.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info(ctx, "shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
