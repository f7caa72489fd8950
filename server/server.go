// Package server is the design-system API: a health check and the shared
// design-tokens document.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultShutdownTimeout = 5 * time.Second

type Server struct {
	config  Config
	logger  *zap.Logger
	limiter *RateLimiter
	handler http.Handler
}

func New(config Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = defaultShutdownTimeout
	}
	s := &Server{
		config:  config,
		logger:  logger.With(zap.String("component", "server")),
		limiter: NewRateLimiter(config.RateLimit, logger),
	}
	mux, err := s.routes()
	if err != nil {
		return nil, err
	}
	cors := NewCORS(config.CORSOrigins, config.CORSDebug)
	s.handler = requestLogger(s.logger, cors.Handler(s.limiter.Middleware(mux)))
	return s, nil
}

func (s *Server) routes() (*http.ServeMux, error) {
	designSystem, err := NewDesignSystemHandler()
	if err != nil {
		return nil, fmt.Errorf("server: design system: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /api/health", NewHealthHandler(s.logger))
	mux.Handle("GET /api/design-system", designSystem)
	return mux, nil
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured port until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.config.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts on ln until ctx is cancelled, then drains in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.ShutdownTimeout)
		defer cancel()
		s.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
