package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/magminventory/inventory-backend/internal/application/readiness"
	"github.com/magminventory/inventory-backend/pkg/adapters/metrics/prometheus"
)

// ReadinessReporter reports the cached dependency status
type ReadinessReporter interface {
	GetStatus() *readiness.Status
}

// Server represents the HTTP API server
type Server struct {
	router    *gin.Engine
	server    *http.Server
	listener  net.Listener
	readiness ReadinessReporter
	database  readiness.Probe
	metrics   *prometheus.Collector
	logger    *zap.Logger
	now       func() time.Time
	dbTimeout time.Duration
}

// Config holds HTTP server configuration
type Config struct {
	Host string
	Port int

	// Mode is the gin mode; defaults to release
	Mode string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Readiness backs /ready; nil means always ready
	Readiness ReadinessReporter

	// Database backs /db-test; nil means not configured
	Database        readiness.Probe
	DatabaseTimeout time.Duration

	Metrics *prometheus.Collector
	Logger  *zap.Logger

	// Clock overrides time.Now for /health
	Clock func() time.Time
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config) *Server {
	mode := cfg.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = prometheus.NewCollector()
	}

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	dbTimeout := cfg.DatabaseTimeout
	if dbTimeout <= 0 {
		dbTimeout = 2 * time.Second
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(logger))
	router.Use(requestMetrics(metrics))
	router.Use(corsMiddleware())
	router.Use(noCache())

	s := &Server{
		router:    router,
		readiness: cfg.Readiness,
		database:  cfg.Database,
		metrics:   metrics,
		logger:    logger,
		now:       now,
		dbTimeout: dbTimeout,
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return s
}

// setupRoutes configures API routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleRoot)
	s.router.GET("/test", s.handleTest)
	s.router.GET("/health", s.handleHealth)

	// Dependency checks
	s.router.GET("/db-test", s.handleDBTest)
	s.router.GET("/ready", s.handleReady)

	// Metrics
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
}

// Handler returns the routed handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Listen binds the TCP listener. It fails if the address is in use.
func (s *Server) Listen() error {
	if s.listener != nil {
		return errors.New("HTTP server is already listening")
	}

	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind HTTP listener on %s: %w", s.server.Addr, err)
	}
	s.listener = listener

	return nil
}

// Addr returns the bound address, or the configured one before Listen
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}

// Serve serves requests on the bound listener until Shutdown
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("HTTP server is not listening")
	}

	s.logger.Info("starting HTTP server", zap.String("addr", s.Addr()))

	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve HTTP: %w", err)
	}

	return nil
}

// Start binds and serves
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	// Listen without Serve leaves the socket open
	if s.listener != nil {
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("failed to close HTTP listener: %w", err)
		}
	}

	s.logger.Info("HTTP server shut down complete")
	return nil
}
