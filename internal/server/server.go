// Package server exposes the tutor over HTTP: /ask answers questions,
// /save_user records learner preferences, and /contact stores contact form
// submissions.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/edgard/arabictutor/internal/api"
	"github.com/edgard/arabictutor/internal/config"
	"github.com/edgard/arabictutor/internal/database"
	"github.com/edgard/arabictutor/internal/logger"
)

// Answerer produces the answer for an /ask request.
type Answerer interface {
	Answer(ctx context.Context, req api.AskRequest) (string, error)
}

// Store is the subset of database.Store the handlers use.
type Store interface {
	Ping(ctx context.Context) error
	SaveLearner(ctx context.Context, learner *database.Learner) error
	SaveContactMessage(ctx context.Context, msg *database.ContactMessage) error
}

// Server is the tutor HTTP API.
type Server struct {
	cfg        config.ServerConfig
	answerer   Answerer
	store      Store
	log        *slog.Logger
	validate   *validator.Validate
	router     chi.Router
	httpServer *http.Server
}

// New creates a Server and builds its router.
func New(cfg config.ServerConfig, answerer Answerer, store Store, log *slog.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	s := &Server{
		cfg:      cfg,
		answerer: answerer,
		store:    store,
		log:      log.With("component", "http_server"),
		validate: validator.New(),
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.HTTPMiddleware(s.log))
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		MaxAge:         300,
	}
	if s.cfg.AllowAllOrigins {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get(api.PathHealth, s.handleHealth)
	r.Post(api.PathAsk, s.handleAsk)
	r.Post(api.PathSaveUser, s.handleSaveUser)
	r.Post(api.PathContact, s.handleContact)

	return r
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", "addr", s.cfg.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}
