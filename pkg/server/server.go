// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz             liveness and build version
//	POST /v1/layout           compute and store a layout document
//	GET  /v1/layout/{id}      fetch a stored layout document
//	POST /v1/render           render a diagram (?format=svg|png|json|dot|nodelink)
//	POST /v1/hit              hit-test a point against a stored or inline layout
//
// Request bodies are [pipeline.Options] in JSON. Errors are returned as
// {"error": {"code": ..., "message": ...}} with the status from
// [errors.HTTPStatus].
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sankey/pkg/cache"
	"github.com/matzehuels/sankey/pkg/pipeline"
)

// DefaultMaxBodyBytes limits request bodies.
const DefaultMaxBodyBytes = 8 << 20

// Server handles API requests. Create it with [New].
type Server struct {
	runner  *pipeline.Runner
	store   cache.LayoutStore
	logger  *log.Logger
	maxBody int64
	timeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithMaxBodyBytes overrides [DefaultMaxBodyBytes].
func WithMaxBodyBytes(n int64) Option { return func(s *Server) { s.maxBody = n } }

// WithTimeout bounds the time spent on one request.
func WithTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// New creates a server that computes layouts with runner and keeps layout
// documents in store.
func New(runner *pipeline.Runner, store cache.LayoutStore, opts ...Option) *Server {
	s := &Server{
		runner:  runner,
		store:   store,
		logger:  runner.Logger,
		maxBody: DefaultMaxBodyBytes,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Get("/layout/{id}", s.handleGetLayout)
		r.Post("/render", s.handleRender)
		r.Post("/hit", s.handleHit)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
