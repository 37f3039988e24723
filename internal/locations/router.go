package locations

import (
	"glowbook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupLocationRoutes(router *gin.RouterGroup, controller *Controller) {
	// Public routes - browse zones and price a transport quote
	publicLocations := router.Group("/locations")
	{
		publicLocations.GET("", controller.ListLocations)
		publicLocations.GET("/:id", controller.GetLocation)
		publicLocations.POST("/quote", controller.QuoteTransport)
	}

	// Admin routes - zone management
	adminLocations := router.Group("/admin/locations")
	adminLocations.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminLocations.POST("", controller.CreateLocation)
		adminLocations.PUT("/:id", controller.UpdateLocation)
		adminLocations.DELETE("/:id", controller.DeactivateLocation)
		adminLocations.GET("", controller.ListLocations)
	}
}
