package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"car-inventory-backend/internal/shared/middleware"
	"car-inventory-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupCatalogRoutes(v1, c)
		setupDetailRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.AuthHandler.Login)
	}
}

func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/car-makes", c.CatalogHandler.ListMakes)
	v1.GET("/car-models", c.CatalogHandler.ListModels)
	v1.GET("/car-features", c.CatalogHandler.ListFeatures)
}

func setupDetailRoutes(v1 *gin.RouterGroup, c *container.Container) {
	details := v1.Group("/car-details")
	{
		// Search is a POST: the filter is a structured body, not a query string
		details.POST("/search", c.DetailHandler.ListDetails)
		details.GET("/:id", c.DetailHandler.GetDetail)

		authRequired := middleware.AuthMiddleware(c.JWTManager)
		details.POST("", authRequired, c.DetailHandler.CreateDetail)
		details.PUT("/:id", authRequired, c.DetailHandler.UpdateDetail)
		details.PUT("", authRequired, c.DetailHandler.UpdateDetails)
		details.DELETE("/:id", authRequired, c.DetailHandler.DeleteDetail)
		details.DELETE("", authRequired, c.DetailHandler.DeleteDetails)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "up"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			dbStatus = "down"
		}

		cacheStatus := "up"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "down"
		}

		status := http.StatusOK
		if dbStatus == "down" {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":   "ok",
			"version":  c.Config.App.Version,
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	}
}
