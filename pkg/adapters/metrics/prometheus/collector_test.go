package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_ObserveRequest(t *testing.T) {
	c := NewCollector()

	c.ObserveRequest(http.MethodGet, "/health", http.StatusOK, 3*time.Millisecond)
	c.ObserveRequest(http.MethodGet, "/health", http.StatusOK, 5*time.Millisecond)
	c.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", UnmatchedRoute, "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.httpDuration))
}

func TestCollector_SetDependencyUp(t *testing.T) {
	c := NewCollector()

	c.SetDependencyUp("redis", true)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.dependencyUp.WithLabelValues("redis")))

	c.SetDependencyUp("redis", false)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.dependencyUp.WithLabelValues("redis")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.readinessChecks.WithLabelValues("redis", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.readinessChecks.WithLabelValues("redis", "failure")))
}

func TestCollector_IndependentRegistries(t *testing.T) {
	// Two collectors in one process must not panic on duplicate registration
	first := NewCollector()
	second := NewCollector()

	first.ObserveRequest(http.MethodGet, "/test", http.StatusOK, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(first.httpRequests.WithLabelValues("GET", "/test", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.httpRequests.WithLabelValues("GET", "/test", "200")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.ObserveRequest(http.MethodGet, "/test", http.StatusOK, time.Millisecond)

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `inventory_backend_http_requests_total{method="GET",route="/test",status="200"} 1`)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}
