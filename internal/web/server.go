// Package web serves the mood pages and JSON API.
package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/justestif/go-mood-to-music/internal/history"
)

// DefaultAddr is the default server address.
const DefaultAddr = "127.0.0.1:5000"

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr        string
	Moods       MoodService
	History     history.Store // optional
	TemplatesFS fs.FS
	StaticFS    fs.FS
	Logger      *zap.Logger
}

// Server is the HTTP server for the web application.
type Server struct {
	router   chi.Router
	server   *http.Server
	handlers *Handlers
	log      *zap.Logger
}

// NewServer creates a new web server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Moods == nil {
		return nil, errors.New("mood service is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	templates, err := NewTemplates(cfg.TemplatesFS)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	s := &Server{
		router:   chi.NewRouter(),
		handlers: NewHandlers(cfg.Moods, cfg.History, templates, log),
		log:      log,
	}

	s.setupMiddleware()
	s.setupRoutes(cfg.StaticFS)

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second, // LLM calls can take up to 30s
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.log))
	s.router.Use(middleware.Recoverer)
	s.router.Use(withCORS)
}

// setupRoutes configures routes for the application.
func (s *Server) setupRoutes(staticFS fs.FS) {
	if staticFS != nil {
		fileServer := http.FileServer(http.FS(staticFS))
		s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	}

	// Pages
	s.router.Get("/", s.handlers.Home)
	s.router.Get("/buttons", s.handlers.Buttons)

	// API
	s.router.Post("/analyze_mood", s.handlers.AnalyzeMood)
	s.router.Post("/api/spotify/analyze_mood", s.handlers.SpotifyAnalyzeMood)
	s.router.Get("/api/moods", s.handlers.Moods)
	s.router.Get("/api/history", s.handlers.History)
	s.router.Get("/api/trends", s.handlers.Trends)
	s.router.Get("/healthz", s.handlers.Health)
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Info("starting server", zap.String("url", "http://"+s.server.Addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and handles graceful shutdown on interrupt signals.
func (s *Server) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		s.log.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.log.Info("server stopped")
	return nil
}
