package calendar

import (
	"errors"
	"net/http"

	"glowbook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// QueryRange handles GET /api/v1/calendar?from=YYYY-MM-DD&to=YYYY-MM-DD
func (c *Controller) QueryRange(ctx *gin.Context) {
	from := ctx.Query("from")
	to := ctx.Query("to")
	if from == "" || to == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Query parameters 'from' and 'to' are required", nil, nil)
		return
	}

	slots, err := c.service.QueryRange(ctx.Request.Context(), from, to)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Calendar retrieved successfully", gin.H{
		"slots": slots,
		"count": len(slots),
	}, nil)
}

// CheckSlot handles GET /api/v1/calendar/check?date=...&time=...
func (c *Controller) CheckSlot(ctx *gin.Context) {
	date := ctx.Query("date")
	timeOfDay := ctx.Query("time")
	if date == "" || timeOfDay == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Query parameters 'date' and 'time' are required", nil, nil)
		return
	}

	free, err := c.service.IsFree(ctx.Request.Context(), date, timeOfDay)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Slot availability checked", gin.H{
		"slot_date": date,
		"slot_time": timeOfDay,
		"available": free,
	}, nil)
}

// BlockSlot handles POST /api/v1/admin/calendar/block
func (c *Controller) BlockSlot(ctx *gin.Context) {
	var req BlockSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	slot, err := c.service.Block(ctx.Request.Context(), req.SlotDate, req.SlotTime, req.Note)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Slot blocked successfully", slot, nil)
}

// UnblockSlot handles POST /api/v1/admin/calendar/unblock
func (c *Controller) UnblockSlot(ctx *gin.Context) {
	var req UnblockSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.service.Unblock(ctx.Request.Context(), req.SlotDate, req.SlotTime); err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Slot unblocked successfully", nil, nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSlotTaken):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
	case errors.Is(err, ErrSlotNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrSlotHeldByBooking):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
	case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidTime), errors.Is(err, ErrInvalidRange):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to process calendar request", nil, err.Error())
	}
}
