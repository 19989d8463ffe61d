// Package server exposes the engine over HTTP with gin.
//
// Routes live under /v1 (see RegisterRoutes). Failures are JSON
// ErrorResponse bodies whose Code is the engine error code; the HTTP
// status is derived from it by StatusFor. Every request carries an
// X-Request-ID that is also the engine's log token for that request.
//
// Prometheus metrics for the HTTP layer and the engine are served at
// /metrics.
package server
