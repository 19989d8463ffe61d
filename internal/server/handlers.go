package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roach88/morsezoo/internal/engine"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Handlers serves the archive routes from one engine.
type Handlers struct {
	engine *engine.Engine
	logger *slog.Logger
}

// NewHandlers creates handlers over eng.
func NewHandlers(eng *engine.Engine, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{engine: eng, logger: logger}
}

func (h *Handlers) requestLogger(c *gin.Context, handler string) *slog.Logger {
	return h.logger.With("request_id", c.GetString(requestIDKey), "handler", handler)
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: Version,
		Root:    h.engine.Root(),
	})
}

// HandleDatabases handles GET /v1/databases.
//
// Response:
//
//	200 OK: {"<name>": "<name>", ...}
//	503 Service Unavailable: archive root unreadable
func (h *Handlers) HandleDatabases(c *gin.Context) {
	dbs, err := h.engine.Databases()
	if err != nil {
		h.requestLogger(c, "HandleDatabases").Error("list databases failed", "error", err)
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dbs)
}

// HandleTree handles GET /v1/databases/tree.
func (h *Handlers) HandleTree(c *gin.Context) {
	tree, err := h.engine.Tree()
	if err != nil {
		h.requestLogger(c, "HandleTree").Error("walk archive failed", "error", err)
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

// HandleQuery handles POST /v1/databases/:db/query.
//
// Request Body:
//
//	QueryBody
//
// Response:
//
//	200 OK: engine.QueryResult
//	400 Bad Request: undecodable body or invalid name
//	404 Not Found: unknown database
//	503 Service Unavailable: record store unavailable
func (h *Handlers) HandleQuery(c *gin.Context) {
	req, ok := h.bindQuery(c, "HandleQuery")
	if !ok {
		return
	}
	res, err := h.engine.Query(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleSummary handles POST /v1/databases/:db/summary.
func (h *Handlers) HandleSummary(c *gin.Context) {
	req, ok := h.bindQuery(c, "HandleSummary")
	if !ok {
		return
	}
	res, err := h.engine.Summarize(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handlers) bindQuery(c *gin.Context, handler string) (engine.QueryRequest, bool) {
	var body QueryBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.requestLogger(c, handler).Warn("invalid request body", "error", err)
		abortBadRequest(c, err)
		return engine.QueryRequest{}, false
	}
	return engine.QueryRequest{
		Database:    c.Param("db"),
		Radio:       body.Radio,
		Permutation: body.Permutation,
	}, true
}

// HandleParameterGraph handles POST /v1/databases/:db/permutations/:perm/parameter-graph.
//
// Response:
//
//	200 OK: engine.ParameterGraph
//	502 Bad Gateway: extraction tool failed or wrote an invalid certificate
func (h *Handlers) HandleParameterGraph(c *gin.Context) {
	var body GraphBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.requestLogger(c, "HandleParameterGraph").Warn("invalid request body", "error", err)
		abortBadRequest(c, err)
		return
	}
	pg, err := h.engine.ParameterGraph(c.Request.Context(), engine.GraphRequest{
		Database:    c.Param("db"),
		Permutation: c.Param("perm"),
		MGCC:        body.MGCC,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, pg)
}

// HandleExport handles POST /v1/databases/:db/permutations/:perm/export.
// The artifact is streamed as an attachment and removed afterwards.
func (h *Handlers) HandleExport(c *gin.Context) {
	logger := h.requestLogger(c, "HandleExport")

	var body ExportBody
	if err := c.ShouldBindJSON(&body); err != nil {
		logger.Warn("invalid request body", "error", err)
		abortBadRequest(c, err)
		return
	}
	art, err := h.engine.Export(c.Request.Context(), engine.ExportRequest{
		Database:    c.Param("db"),
		Permutation: c.Param("perm"),
		Kind:        body.Kind,
		MGCC:        body.MGCC,
		INCC:        body.INCC,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	defer art.Close()

	logger.Info("streaming artifact", "artifact", art.Name, "bytes", art.Size)
	c.FileAttachment(art.Path, art.Name)
}
