package calendar

import (
	"glowbook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCalendarRoutes(router *gin.RouterGroup, controller *Controller) {
	// Public routes - availability browsing
	publicCalendar := router.Group("/calendar")
	{
		publicCalendar.GET("", controller.QueryRange)
		publicCalendar.GET("/check", controller.CheckSlot)
	}

	// Admin routes - manual slot blocking
	adminCalendar := router.Group("/admin/calendar")
	adminCalendar.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminCalendar.POST("/block", controller.BlockSlot)
		adminCalendar.POST("/unblock", controller.UnblockSlot)
	}
}
