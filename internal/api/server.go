// Package api serves the book service over HTTP as a small JSON REST API.
//
// Routes:
//
//	GET  /list              every book
//	GET  /tags              union of all tags
//	GET  /search/{title}    search one book
//	GET  /search            search books selected by tag filter
//	POST /upload            multipart upload (book, title, tags)
//	GET  /history           recorded searches
//	GET  /health            liveness
//
// Errors are returned as {"error": msg, "code": "E00xx"} with the status
// chosen by fault.Status.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/jpl-au/bookrab/internal/logging"
	"github.com/jpl-au/bookrab/internal/service"
)

// Config defines runtime options for the REST server.
type Config struct {
	Addr      string
	MaxUpload int64   // request body limit in bytes; 0 disables
	RateLimit float64 // requests per second; 0 disables
	RateBurst int
}

// Server wraps an HTTP server exposing a service.Service.
type Server struct {
	cfg        Config
	svc        service.Service
	httpServer *http.Server
	log        *slog.Logger
}

// New creates a server with routes and middleware attached.
func New(svc service.Service, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	s := &Server{
		cfg: cfg,
		svc: svc,
		log: logging.ForComponent(logging.CompHTTP),
	}

	router := mux.NewRouter()
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/list", s.handleList).Methods(http.MethodGet)
	router.HandleFunc("/tags", s.handleTags).Methods(http.MethodGet)
	router.HandleFunc("/search", s.handleSearchByTags).Methods(http.MethodGet)
	router.HandleFunc("/search/{title}", s.handleSearch).Methods(http.MethodGet)
	router.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)
	router.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "", fmt.Errorf("no route for %s %s", r.Method, r.URL.Path))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "", fmt.Errorf("method %s not allowed on %s", r.Method, r.URL.Path))
	})

	router.Use(s.withRequestID, s.withAccessLog, s.withRecover)
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		router.Use(withRateLimit(rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)))
	}
	if cfg.MaxUpload > 0 {
		router.Use(withBodyLimit(cfg.MaxUpload))
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the configured HTTP handler (used by tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until Shutdown is called. Returns nil on graceful shutdown.
func (s *Server) Start() error {
	s.log.Info("listening", slog.String("addr", s.cfg.Addr))
	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		if closeErr := s.httpServer.Close(); closeErr != nil {
			return fmt.Errorf("graceful shutdown timed out and force close failed: %w", closeErr)
		}
		return nil
	}
	return err
}
