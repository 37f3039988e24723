package bookings

import (
	"glowbook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller *Controller) {
	// Customer routes. Submission accepts guests, so auth is optional;
	// everything else needs a token.
	customerBookings := router.Group("/bookings")
	{
		customerBookings.POST("", middleware.OptionalAuth(), controller.Submit)
		customerBookings.GET("", middleware.JWTAuth(), controller.GetMyBookings)
		customerBookings.GET("/:id", middleware.JWTAuth(), controller.GetBooking)
		customerBookings.POST("/:id/cancel", middleware.JWTAuth(), controller.Cancel)
	}

	// Admin routes - lifecycle management
	adminBookings := router.Group("/admin/bookings")
	adminBookings.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminBookings.GET("", controller.ListBookings)
		adminBookings.GET("/:id", controller.GetBooking)
		adminBookings.POST("/:id/confirm", controller.Confirm)
		adminBookings.POST("/:id/deposit", controller.MarkDepositPaid)
		adminBookings.POST("/:id/complete", controller.Complete)
		adminBookings.POST("/:id/cancel", controller.Cancel)
		adminBookings.PUT("/:id/notes", controller.SetAdminNotes)
	}
}
