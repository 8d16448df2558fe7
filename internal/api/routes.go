package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler, allowedOrigins []string) {
	router.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	api := router.Group("/api")
	{
		api.GET("/properties", handler.GetAllProperties)
		api.GET("/tenants/risk", handler.GetTenantRisk)
		api.GET("/dashboard/kpis", handler.GetKpiSnapshot)
		api.GET("/dashboard/trends", handler.GetTrendSeries)
		api.GET("/dashboard/forecast", handler.GetForecast)
		api.GET("/dashboard/geo", handler.GetGeoSummary)
		api.POST("/records/import", handler.ImportProperties)
	}
}
