package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roach88/morsezoo/internal/engine"
)

// codeInvalidRequest marks request bodies that could not be decoded.
const codeInvalidRequest = "INVALID_REQUEST"

// StatusFor maps an engine error code to an HTTP status.
func StatusFor(code engine.ErrorCode) int {
	switch code {
	case engine.ErrCodeInvalidArgument:
		return http.StatusBadRequest
	case engine.ErrCodeDatabaseNotFound:
		return http.StatusNotFound
	case engine.ErrCodeStoreUnavailable:
		return http.StatusServiceUnavailable
	case engine.ErrCodeExtractionFailed, engine.ErrCodeCertificateInvalid:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes err as an ErrorResponse. Errors that are not
// engine errors become 500 INTERNAL.
func abortWithError(c *gin.Context, err error) {
	var ee *engine.Error
	if !errors.As(err, &ee) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Error: err.Error(),
			Code:  "INTERNAL",
		})
		return
	}
	c.AbortWithStatusJSON(StatusFor(ee.Code), ErrorResponse{
		Error: ee.Error(),
		Code:  string(ee.Code),
	})
}

func abortBadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error: "invalid request body: " + err.Error(),
		Code:  codeInvalidRequest,
	})
}
