package server

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"nutricalc/internal/handlers"
	applog "nutricalc/internal/log"
	"nutricalc/internal/middleware"
	"nutricalc/internal/nutrition"
)

const (
	defaultRateLimitRPS   = 10
	defaultRateLimitBurst = 20
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr      string
	Database  *gorm.DB
	Profiles  nutrition.Profiles
	RateLimit RateLimitConfig
}

// RateLimitConfig bounds per-client request rates on /api/ routes.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	TrustProxy        bool
}

// Server wraps an http.Server and exposes helpers for bootstrapping a
// production-ready web service.
type Server struct {
	config     Config
	httpServer *http.Server
	limiter    *middleware.RateLimiter
}

// New builds a new Server using the provided configuration.
func New(cfg Config) (*Server, error) {
	applog.Debug(context.Background(), "initializing server",
		"addr", cfg.Addr,
		"profiles", cfg.Profiles.Names(),
	)

	limits := cfg.RateLimit
	if limits.RequestsPerSecond <= 0 {
		applog.Debug(context.Background(), "rate limit not provided, using default")
		limits.RequestsPerSecond = defaultRateLimitRPS
	}
	if limits.Burst <= 0 {
		limits.Burst = defaultRateLimitBurst
	}
	limiter := middleware.NewRateLimiter(limits.RequestsPerSecond, limits.Burst, limits.TrustProxy)

	handlers.Configure(cfg.Database, cfg.Profiles)

	applog.Debug(context.Background(), "handler dependencies configured")

	handler := middleware.Logging(newRouter(limiter))

	applog.Debug(context.Background(), "http handler chain prepared")

	return &Server{
		config:  cfg,
		limiter: limiter,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Debug(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server with a timeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown")
	s.limiter.Close()
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
