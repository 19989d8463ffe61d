package server

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the archive routes on rg (typically /v1).
//
//	GET  /databases
//	GET  /databases/tree
//	POST /databases/:db/query
//	POST /databases/:db/summary
//	POST /databases/:db/permutations/:perm/parameter-graph
//	POST /databases/:db/permutations/:perm/export
func RegisterRoutes(rg *gin.RouterGroup, h *Handlers) {
	dbs := rg.Group("/databases")
	{
		dbs.GET("", h.HandleDatabases)
		dbs.GET("/tree", h.HandleTree)

		dbs.POST("/:db/query", h.HandleQuery)
		dbs.POST("/:db/summary", h.HandleSummary)

		dbs.POST("/:db/permutations/:perm/parameter-graph", h.HandleParameterGraph)
		dbs.POST("/:db/permutations/:perm/export", h.HandleExport)
	}
}
