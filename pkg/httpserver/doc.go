// Package httpserver runs the rbacd HTTP listener with graceful shutdown and
// provides liveness and readiness handlers for orchestrator probes.
package httpserver
