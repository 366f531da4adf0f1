// Package server exposes the catalog over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/RamiAldahir/Pokedex-Tracker/internal/catalog"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/config"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/logger"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/metrics"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/source"
)

// Server serves the catalog API and the static front end.
type Server struct {
	cfg     *config.Config
	catalog *catalog.Service
	metrics *metrics.Collector
	log     *logger.Logger

	// readerFor builds the reader used by /api/reload.
	readerFor func(*config.Config) (source.Reader, error)
}

// New creates a Server. metrics may be nil.
func New(cfg *config.Config, svc *catalog.Service, m *metrics.Collector, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	return &Server{
		cfg:       cfg,
		catalog:   svc,
		metrics:   m,
		log:       log,
		readerFor: source.FromConfig,
	}
}

// Handler returns the routed handler with request id, recovery and access logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	s.handle(mux, "GET /{$}", s.handleIndex)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.Server.StaticDir))))

	s.handle(mux, "GET /api/generation/{n}", s.handleGeneration)
	s.handle(mux, "GET /api/generations", s.handleGenerations)
	s.handle(mux, "GET /api/status", s.handleStatus)
	s.handle(mux, "POST /api/reload", s.handleReload)
	s.handle(mux, "POST /api/upload", s.handleUpload)
	s.handle(mux, "POST /api/update", s.handleUpdate)

	s.handle(mux, "GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	var h http.Handler = mux
	h = withRecover(s.log, h)
	h = withAccessLog(s.log, h)
	h = withRequestID(h)
	return h
}

func (s *Server) handle(mux *http.ServeMux, pattern string, fn http.HandlerFunc) {
	mux.Handle(pattern, s.instrument(pattern, fn))
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	sc := s.cfg.Server
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: seconds(sc.ReadTimeoutSeconds),
		ReadTimeout:       seconds(sc.ReadTimeoutSeconds),
		WriteTimeout:      seconds(sc.WriteTimeoutSeconds),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("HTTP server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.log.Infow("Shutting down HTTP server", "timeout", seconds(sc.ShutdownTimeoutSeconds))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), seconds(sc.ShutdownTimeoutSeconds))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
