// Package server собирает HTTP-сервер синхронизации: маршруты,
// цепочку middleware и корректное завершение.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/iudanet/gymsync/internal/server/handlers"
	"github.com/iudanet/gymsync/internal/server/middleware"
)

// HealthPath путь health-пробы, не требует токена и не логируется
const HealthPath = "/health"

// Options параметры сервера
type Options struct {
	Addr            string
	CORSOrigins     []string
	JWT             handlers.JWTConfig
	RateLimit       int
	RateWindow      time.Duration
	ShutdownTimeout time.Duration
}

// Server HTTP-сервер синхронизации
type Server struct {
	logger  *slog.Logger
	http    *http.Server
	limiter *middleware.RateLimiter
	opts    Options
}

// New wires routes and middleware.
// Chain: recovery, logging, CORS, rate limit, optional JWT.
func New(opts Options, reconciler handlers.Reconciler, db handlers.Pinger, version string, logger *slog.Logger) *Server {
	syncHandler := handlers.NewSyncHandler(logger, reconciler)
	healthHandler := handlers.NewHealthHandler(logger, db, version)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /sync", syncHandler.Push)
	mux.HandleFunc("GET /sync/{userId}", syncHandler.Pull)
	mux.HandleFunc("GET /sync/{userId}/status", syncHandler.Status)
	mux.HandleFunc("DELETE /sync/{userId}", syncHandler.Delete)
	mux.HandleFunc("GET "+HealthPath, healthHandler.Health)

	limiter := middleware.NewRateLimiter(opts.RateLimit, opts.RateWindow, logger)

	var handler http.Handler = mux
	if opts.JWT.Enabled() {
		handler = middleware.AuthMiddleware(logger, opts.JWT, HealthPath)(handler)
	}
	handler = middleware.RateLimitMiddleware(limiter, logger)(handler)
	handler = middleware.CORSMiddleware(opts.CORSOrigins)(handler)
	handler = middleware.LoggingMiddleware(logger, HealthPath)(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return &Server{
		logger:  logger,
		limiter: limiter,
		opts:    opts,
		http: &http.Server{
			Addr:              opts.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Handler returns the root handler with all middleware applied
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves on the configured address until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.limiter.Stop()

	errC := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "addr", ln.Addr().String(), "auth", s.opts.JWT.Enabled())
		errC <- s.http.Serve(ln)
	}()

	select {
	case err := <-errC:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	if err := <-errC; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
