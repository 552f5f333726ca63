// Package readiness tracks whether the optional backing services answer.
//
// The monitor runs every registered probe on a fixed interval and caches the
// result so the /ready endpoint never blocks on a slow dependency. With no
// probes registered the service is always ready.
package readiness
