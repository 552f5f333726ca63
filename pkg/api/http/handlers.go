package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// APIName is reported by the root endpoint
	APIName = "AI Inventory Tracker Backend API"

	// APIVersion is the public API version, independent of the build version
	APIVersion = "1.0.0"

	// TimestampLayout renders ISO-8601 local time with microseconds
	TimestampLayout = "2006-01-02T15:04:05.000000"
)

// TestResponse is returned by /test
type TestResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by /health
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// RootResponse describes the API
type RootResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// DBTestResponse is returned by /db-test
type DBTestResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ReadyResponse is returned by /ready
type ReadyResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// handleTest handles liveness test requests
func (s *Server) handleTest(c *gin.Context) {
	c.JSON(http.StatusOK, TestResponse{
		Message: "Back Is Running",
	})
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "OK",
		Timestamp: s.now().Format(TimestampLayout),
	})
}

// handleRoot describes the API
func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Message: APIName,
		Version: APIVersion,
		Endpoints: map[string]string{
			"test":   "/test",
			"health": "/health",
		},
	})
}

// handleDBTest runs the database probe once
func (s *Server) handleDBTest(c *gin.Context) {
	if s.database == nil {
		c.JSON(http.StatusServiceUnavailable, DBTestResponse{
			Status:  "Error",
			Message: "Database is not configured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.dbTimeout)
	defer cancel()

	if err := s.database.Check(ctx); err != nil {
		s.logger.Warn("database connection test failed", zap.Error(err))
		c.JSON(http.StatusOK, DBTestResponse{
			Status:  "Failed",
			Message: "Database connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, DBTestResponse{
		Status:  "Connected",
		Message: "Database connection successful",
	})
}

// handleReady reports the cached dependency status
func (s *Server) handleReady(c *gin.Context) {
	if s.readiness == nil {
		c.JSON(http.StatusOK, ReadyResponse{
			Status:    "ready",
			Timestamp: s.now().Format(TimestampLayout),
			Checks:    map[string]string{},
		})
		return
	}

	status := s.readiness.GetStatus()

	code := http.StatusOK
	label := "ready"
	if !status.Ready {
		code = http.StatusServiceUnavailable
		label = "not_ready"
	}

	c.JSON(code, ReadyResponse{
		Status:    label,
		Timestamp: status.Timestamp.Format(TimestampLayout),
		Checks:    status.Checks,
	})
}
