// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz              liveness probe
//	GET  /v1/formats           supported output formats
//	POST /v1/layout            place rectangles, respond with layout JSON
//	POST /v1/render?format=F   place and render, respond with the artifact
//	POST /v1/visualize?format=F render a posted layout JSON
//
// Request bodies for /v1/layout and /v1/render are [Request] documents.
// Fields left out keep the values of the server's config, so an empty
// object reproduces the configured default cloud.
//
// Errors are JSON objects {"code": ..., "error": ...}. Validation failures
// map to 400, a field that runs out of room to 422.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tagscloud/pkg/config"
	"github.com/matzehuels/tagscloud/pkg/pipeline"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Server serves the pipeline over HTTP. It is safe for concurrent use.
type Server struct {
	runner   *pipeline.Runner
	defaults config.Config
	logger   *log.Logger
}

// New creates a server that runs requests through runner. Request fields
// default to the values in cfg.
func New(runner *pipeline.Runner, cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, defaults: cfg, logger: logger}
}

// Handler returns the HTTP handler with every route mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/formats", s.handleFormats)
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
		r.Post("/visualize", s.handleVisualize)
	})

	return r
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(s.defaults.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.defaults.Server.WriteTimeout) * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// logRequests logs one line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"id", middleware.GetReqID(r.Context()))
	})
}
