package packages

import (
	"glowbook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPackageRoutes(router *gin.RouterGroup, controller *Controller) {
	// Public routes - anyone can browse packages
	publicPackages := router.Group("/packages")
	{
		publicPackages.GET("", controller.ListPackages)
		publicPackages.GET("/:id", controller.GetPackage)
	}

	// Admin routes - package management
	adminPackages := router.Group("/admin/packages")
	adminPackages.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminPackages.POST("", controller.CreatePackage)
		adminPackages.PUT("/:id", controller.UpdatePackage)
		adminPackages.DELETE("/:id", controller.DeactivatePackage)
		adminPackages.GET("", controller.ListPackages)
	}
}
