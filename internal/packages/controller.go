package packages

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

// CreatePackage handles POST /api/v1/admin/packages
func (c *Controller) CreatePackage(ctx *gin.Context) {
	var req CreatePackageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	pkg, err := c.service.CreatePackage(ctx.Request.Context(), req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Package created successfully", pkg, nil)
}

// GetPackage handles GET /api/v1/packages/:id
func (c *Controller) GetPackage(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid package ID", nil, nil)
		return
	}

	pkg, err := c.service.GetPackage(ctx.Request.Context(), id)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Package retrieved successfully", pkg, nil)
}

// ListPackages handles GET /api/v1/packages
func (c *Controller) ListPackages(ctx *gin.Context) {
	// Public listing only shows active packages; admins pass all=true
	activeOnly := ctx.DefaultQuery("all", "false") != "true"

	pkgs, err := c.service.ListPackages(ctx.Request.Context(), activeOnly)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Packages retrieved successfully", gin.H{
		"packages": pkgs,
		"count":    len(pkgs),
	}, nil)
}

// UpdatePackage handles PUT /api/v1/admin/packages/:id
func (c *Controller) UpdatePackage(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid package ID", nil, nil)
		return
	}

	var req UpdatePackageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	pkg, err := c.service.UpdatePackage(ctx.Request.Context(), id, req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Package updated successfully", pkg, nil)
}

// DeactivatePackage handles DELETE /api/v1/admin/packages/:id
func (c *Controller) DeactivatePackage(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid package ID", nil, nil)
		return
	}

	if err := c.service.DeactivatePackage(ctx.Request.Context(), id); err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Package deactivated successfully", nil, nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPackageNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrInvalidType), errors.Is(err, ErrNegativeRate), errors.Is(err, ErrMaidBoundsOrder):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to process package request", nil, err.Error())
	}
}
