// Package server serves a live preview of the report over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/etnz/pnlreport"
	"github.com/etnz/pnlreport/renderer"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Loader builds a fresh report context, it is called on every request so
// that edits of the input files show up on reload.
type Loader func(ctx context.Context) (*pnlreport.ReportContext, error)

// Config holds server configuration
type Config struct {
	Addr    string
	Log     zerolog.Logger
	Load    Loader
	Options renderer.Options
}

// Server represents the HTTP server
type Server struct {
	router  *chi.Mux
	server  *http.Server
	log     zerolog.Logger
	load    Loader
	options renderer.Options
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		log:     cfg.Log.With().Str("component", "server").Logger(),
		load:    cfg.Load,
		options: cfg.Options,
	}

	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Get("/", s.handleReport)
	s.router.Get("/context.json", s.handleContext)
	s.router.Get("/summary.md", s.handleSummary)
	s.router.Get("/health", s.handleHealth)

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler { return s.router }

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

func (s *Server) context(w http.ResponseWriter, r *http.Request) (*pnlreport.ReportContext, bool) {
	rc, err := s.load(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("could not build report")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return rc, true
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rc, ok := s.context(w, r)
	if !ok {
		return
	}
	opts := s.options
	opts.Generated = time.Now()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderer.HTML(w, rc, opts); err != nil {
		s.log.Error().Err(err).Msg("could not render report")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	rc, ok := s.context(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := pnlreport.EncodeReportContext(w, rc); err != nil {
		s.log.Error().Err(err).Msg("could not encode report context")
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	rc, ok := s.context(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	if _, err := w.Write([]byte(renderer.Markdown(rc, s.options))); err != nil {
		s.log.Error().Err(err).Msg("could not write summary")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok"))
}
