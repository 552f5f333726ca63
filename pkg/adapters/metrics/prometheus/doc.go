// Package prometheus exposes request and dependency metrics for the HTTP API.
package prometheus
