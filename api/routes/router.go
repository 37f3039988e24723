// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"glowbook/internal/bookings"
	"glowbook/internal/calendar"
	"glowbook/internal/locations"
	"glowbook/internal/packages"
	"glowbook/internal/pricing"
	"glowbook/internal/shared/config"
	"glowbook/internal/shared/database"
	"glowbook/pkg/cache"
	"glowbook/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher bookings.EventPublisher
}

// NewRouter creates a new router instance. publisher may be nil when the
// event broker is disabled.
func NewRouter(cfg *config.Config, db *database.DB, publisher bookings.EventPublisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) error {
	registerValidators()
	r.setupHealthRoutes(engine)

	var cacheService cache.Service
	if r.db.Redis != nil {
		cacheService = cache.NewService(r.db.GetRedisClient())
	}

	api := engine.Group(r.config.GetAPIBasePath())

	// Packages
	packageRepo := packages.NewRepository(r.db.GetPostgreSQL())
	packageService := packages.NewService(packageRepo, cacheService, r.config.Redis.CacheTTL)
	packages.SetupPackageRoutes(api, packages.NewController(packageService))

	// Transport locations
	locationRepo := locations.NewRepository(r.db.GetPostgreSQL())
	locationService, err := locations.NewService(
		locationRepo,
		cacheService,
		r.config.Redis.CacheTTL,
		r.config.Transport.Bands,
		r.config.Transport.BeyondFee,
	)
	if err != nil {
		return err
	}
	locations.SetupLocationRoutes(api, locations.NewController(locationService))

	// Calendar availability
	calendarRepo := calendar.NewRepository(r.db.GetPostgreSQL())
	calendarService := calendar.NewService(calendarRepo, cacheService, r.config.Redis.CalendarTTL, logger.GetDefault())
	calendar.SetupCalendarRoutes(api, calendar.NewController(calendarService))

	// Bookings
	calculator, err := pricing.New(r.config.Booking.DepositFraction)
	if err != nil {
		return err
	}
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(
		bookingRepo,
		packageService,
		locationService,
		calendarService,
		r.publisher,
		calculator,
		r.config.Booking.CancellationCutoff,
		r.config.Booking.SubmitTimeout,
		logger.GetDefault(),
	)
	bookings.SetupBookingRoutes(api, bookings.NewController(bookingService))

	return nil
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "glowbook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "glowbook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}
