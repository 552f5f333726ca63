// Package http provides the HTTP REST API implementation.
//
// The HTTP server exposes endpoints for:
//   - Liveness (/test) and health (/health) checks
//   - A root document describing the API (/)
//   - Database connectivity (/db-test) and dependency readiness (/ready)
//   - Prometheus metrics (/metrics)
//
// Every response carries permissive CORS headers.
package http
