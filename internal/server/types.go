package server

import "github.com/roach88/morsezoo/internal/extract"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is the engine error code, or INVALID_REQUEST for undecodable
	// request bodies.
	Code string `json:"code"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Root    string `json:"root"`
}

// QueryBody is the request body of the query and summary routes.
type QueryBody struct {
	Radio       []string `json:"radio"`
	Permutation string   `json:"permutation"`
}

// GraphBody is the request body of the parameter-graph route.
type GraphBody struct {
	MGCC int `json:"mgcc"`
}

// ExportBody is the request body of the export route.
type ExportBody struct {
	Kind extract.Kind `json:"kind" binding:"required"`
	MGCC int          `json:"mgcc"`
	INCC int          `json:"incc"`
}
