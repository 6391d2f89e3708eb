// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dashboard serves the literature-analyzer web interface: a
// keyword form, charts of the aggregates, a word cloud of the abstracts,
// a paginated data table and file exports.
package dashboard

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pdiddy/literature-analyzer/internal/session"
	"github.com/pdiddy/literature-analyzer/pkg/types"
)

// Defaults for DashboardConfig fields left at zero.
const (
	DefaultHost           = "127.0.0.1"
	DefaultPort           = 8501
	DefaultPageSize       = 100
	DefaultRequestTimeout = 60 * time.Second
)

//go:embed templates/*.html
var templateFS embed.FS

// Server is the HTTP server for the dashboard.
type Server struct {
	session *session.Session
	config  types.DashboardConfig
	logger  *zap.Logger
	tmpl    *template.Template
	server  *http.Server
}

// NewServer creates a server over sess. Zero config fields take defaults.
func NewServer(sess *session.Session, cfg types.DashboardConfig, logger *zap.Logger) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	tmpl, err := template.New("index.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		session: sess,
		config:  cfg,
		logger:  logger,
		tmpl:    tmpl,
	}
	s.server = &http.Server{
		Addr:              s.Addr(),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Routes returns the router with all dashboard endpoints. Keyword
// submission is exempt from the request timeout because a fetch can take
// minutes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Post("/search", s.handleSearch)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.config.RequestTimeout))
		r.Use(middleware.Compress(5))

		r.Get("/", s.handleIndex)
		r.Post("/reset", s.handleReset)
		r.Get("/export/{format}", s.handleExport)
		r.Get("/api/v1/state", s.handleState)
		r.Get("/api/v1/aggregates", s.handleAggregates)
		r.Get("/health", s.handleHealth)
	})
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.logger.Info("Starting dashboard", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
