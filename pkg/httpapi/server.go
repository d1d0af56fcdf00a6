// Package httpapi exposes the planning pipeline over HTTP.
//
// The server wraps a pipeline.Runner and a plan store: POST /v1/plans
// runs the pipeline and persists the result, the remaining endpoints
// retrieve, list, re-render, and delete stored plans.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mkessler/deckplan/pkg/errors"
	"github.com/mkessler/deckplan/pkg/pipeline"
	"github.com/mkessler/deckplan/pkg/store"
)

const (
	requestTimeout  = 120 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Config configures the API server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Runner executes the planning pipeline. Required.
	Runner *pipeline.Runner

	// Store persists plans. Required.
	Store store.Store

	// Logger receives request logs. Nil uses the default logger.
	Logger *log.Logger
}

// Server is the deckplan HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	http   *http.Server
}

// New creates the API server and mounts its routes.
func New(cfg Config) (*Server, error) {
	if cfg.Runner == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "pipeline runner is required")
	}
	if cfg.Store == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "plan store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		runner: cfg.Runner,
		store:  cfg.Store,
		logger: logger,
	}
	s.http = &http.Server{
		Addr:    cfg.Addr,
		Handler: s.Routes(),
	}
	return s, nil
}

// Routes builds the router. Exposed so tests can drive the handler
// without a listener.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1/plans", func(r chi.Router) {
		r.Post("/", s.handleCreatePlan)
		r.Get("/", s.handleListPlans)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetPlan)
			r.Delete("/", s.handleDeletePlan)
			r.Get("/artifact", s.handleGetArtifact)
		})
	})

	return r
}

// ListenAndServe starts the server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("api server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(errors.ErrCodeNetwork, err, "api server")
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// requestLogger logs each request with its status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
