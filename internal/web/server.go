// internal/web/server.go
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tamzrod/siren-display/internal/display"
	"github.com/tamzrod/siren-display/internal/logfields"
	"github.com/tamzrod/siren-display/internal/raster"
	"github.com/tamzrod/siren-display/internal/region"
)

const shutdownTimeout = 5 * time.Second

// Config configures the status surface.
type Config struct {
	Addr string

	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler
	Logger  *slog.Logger
}

// Server is a read-only HTTP view of the last dispatched snapshot and
// the frame the panel shows for it. It observes the screen consumer's
// frames and never feeds anything back.
type Server struct {
	cfg      Config
	universe []string
	log      *slog.Logger
	router   *chi.Mux
	server   *http.Server
	now      func() time.Time

	mu         sync.RWMutex
	snap       *region.Snapshot
	at         time.Time
	dispatched bool
	frame      raster.Frame
	hasFrame   bool
}

// New builds the surface over the region universe used for the counts.
// The listener is not opened until Start.
func New(cfg Config, universe []string) (*Server, error) {
	if len(universe) == 0 {
		return nil, errors.New("web: region universe required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		cfg:      cfg,
		universe: append([]string(nil), universe...),
		log:      cfg.Logger,
		router:   chi.NewRouter(),
		now:      time.Now,
		snap:     region.Empty(),
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(10 * time.Second))

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/snapshot", s.handleSnapshot)
	s.router.Get("/frame/{layer}.png", s.handleFrame)

	if s.cfg.Metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.cfg.Metrics)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start serves until Close. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.log.Info("web surface listening", logfields.Addr(s.cfg.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ObserveFrame makes snap and the frame composed for it visible to readers.
func (s *Server) ObserveFrame(snap *region.Snapshot, f raster.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap = snap
	s.at = s.now()
	s.dispatched = true
	s.frame = f
	s.hasFrame = true
}

var _ display.FrameObserver = (*Server)(nil)

// Close shuts the listener down gracefully.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) current() (snap *region.Snapshot, at time.Time, dispatched bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.at, s.dispatched
}

func (s *Server) currentFrame() (raster.Frame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame, s.hasFrame
}
