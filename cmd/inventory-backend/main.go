package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/magminventory/inventory-backend/internal/application/readiness"
	"github.com/magminventory/inventory-backend/internal/config"
	"github.com/magminventory/inventory-backend/pkg/adapters/metrics/prometheus"
	"github.com/magminventory/inventory-backend/pkg/adapters/probes/postgres"
	"github.com/magminventory/inventory-backend/pkg/adapters/probes/redis"
	"github.com/magminventory/inventory-backend/pkg/api/http"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting inventory backend",
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	metricsCollector := prometheus.NewCollector()

	// Optional dependency probes
	var probes []readiness.Probe
	var dbProbe *postgres.Probe

	if cfg.Dependencies.DatabaseURL != "" {
		dbProbe, err = postgres.Open(cfg.Dependencies.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to open database probe", zap.Error(err))
		}
		probes = append(probes, dbProbe)
		logger.Info("database probe enabled")
	}

	var redisProbe *redis.Probe
	if cfg.Dependencies.RedisURL != "" {
		redisProbe, err = redis.Open(cfg.Dependencies.RedisURL, cfg.Readiness.Timeout)
		if err != nil {
			logger.Fatal("failed to open redis probe", zap.Error(err))
		}
		probes = append(probes, redisProbe)
		logger.Info("redis probe enabled", zap.String("addr", redisProbe.Addr()))
	}

	monitor := readiness.NewMonitor(
		probes,
		cfg.Readiness.Interval,
		cfg.Readiness.Timeout,
		metricsCollector,
		logger,
	)

	serverCfg := &http.Config{
		Host:            cfg.Host,
		Port:            cfg.Port,
		Mode:            cfg.GinMode,
		ReadTimeout:     cfg.Timeouts.HTTPRead,
		WriteTimeout:    cfg.Timeouts.HTTPWrite,
		IdleTimeout:     cfg.Timeouts.HTTPIdle,
		Readiness:       monitor,
		DatabaseTimeout: cfg.Readiness.Timeout,
		Metrics:         metricsCollector,
		Logger:          logger,
	}
	// A nil *postgres.Probe must not become a non-nil interface
	if dbProbe != nil {
		serverCfg.Database = dbProbe
	}
	httpServer := http.NewServer(serverCfg)

	// Bind before announcing so a busy port aborts startup
	if err := httpServer.Listen(); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	monitor.Start()

	go func() {
		if err := httpServer.Serve(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	logBanner(logger, httpServer.Addr(), dbProbe != nil)

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	monitor.Stop()

	if dbProbe != nil {
		if err := dbProbe.Close(); err != nil {
			logger.Error("database close error", zap.Error(err))
		}
	}

	if redisProbe != nil {
		if err := redisProbe.Close(); err != nil {
			logger.Error("Redis close error", zap.Error(err))
		}
	}

	logger.Info("inventory backend shut down complete")
}

// logBanner announces the bound address and the informational endpoints
func logBanner(logger *zap.Logger, addr string, withDatabase bool) {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		port = addr
	}
	base := "http://localhost:" + port

	logger.Info("backend server running",
		zap.String("addr", addr),
		zap.String("url", base))
	logger.Info("test endpoint", zap.String("url", base+"/test"))
	logger.Info("health check", zap.String("url", base+"/health"))
	if withDatabase {
		logger.Info("database test", zap.String("url", base+"/db-test"))
	}
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
