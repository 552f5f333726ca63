// Package probes holds connectivity checks for optional backing services.
//
// Each probe satisfies readiness.Probe and owns the client it checks. None of
// them read or write data; they only confirm the service answers.
package probes
