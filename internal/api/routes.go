package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/healthz", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Tenant page serving, keyed by Host header
	router.GET("/pages/*path", handler.ServePage)

	v1 := router.Group("/api/v1")
	{
		businesses := v1.Group("/businesses")
		{
			businesses.POST("/:id/generate", handler.StartRun) // POST /api/v1/businesses/:id/generate
			businesses.GET("/:id/pages", handler.ListPages)    // GET /api/v1/businesses/:id/pages
		}

		v1.GET("/runs/:id", handler.GetRun) // GET /api/v1/runs/:id
	}
}
