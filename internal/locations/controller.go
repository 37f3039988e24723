package locations

import (
	"errors"
	"net/http"

	"glowbook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateLocation handles POST /api/v1/admin/locations
func (c *Controller) CreateLocation(ctx *gin.Context) {
	var req CreateLocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	loc, err := c.service.CreateLocation(ctx.Request.Context(), req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Location created successfully", loc, nil)
}

// GetLocation handles GET /api/v1/locations/:id
func (c *Controller) GetLocation(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid location ID", nil, nil)
		return
	}

	loc, err := c.service.GetLocation(ctx.Request.Context(), id)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Location retrieved successfully", loc, nil)
}

// ListLocations handles GET /api/v1/locations
func (c *Controller) ListLocations(ctx *gin.Context) {
	activeOnly := ctx.DefaultQuery("all", "false") != "true"

	locs, err := c.service.ListLocations(ctx.Request.Context(), activeOnly)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Locations retrieved successfully", gin.H{
		"locations": locs,
		"count":     len(locs),
	}, nil)
}

// QuoteTransport handles POST /api/v1/locations/quote. It prices either a
// predefined zone or a custom address without creating anything.
func (c *Controller) QuoteTransport(ctx *gin.Context) {
	var loc Location
	if err := ctx.ShouldBindJSON(&loc); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	fee, err := c.service.TransportFee(ctx.Request.Context(), loc)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Transport fee calculated", gin.H{
		"transport_cost": fee,
	}, nil)
}

// UpdateLocation handles PUT /api/v1/admin/locations/:id
func (c *Controller) UpdateLocation(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid location ID", nil, nil)
		return
	}

	var req UpdateLocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	loc, err := c.service.UpdateLocation(ctx.Request.Context(), id, req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Location updated successfully", loc, nil)
}

// DeactivateLocation handles DELETE /api/v1/admin/locations/:id
func (c *Controller) DeactivateLocation(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid location ID", nil, nil)
		return
	}

	if err := c.service.DeactivateLocation(ctx.Request.Context(), id); err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Location deactivated successfully", nil, nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrLocationNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrInvalidLocation), errors.Is(err, ErrInvalidDistance):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to process location request", nil, err.Error())
	}
}
