package bookings

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"glowbook/internal/calendar"
	"glowbook/internal/locations"
	"glowbook/internal/pricing"
	"glowbook/internal/shared/middleware"
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

// Submit handles POST /api/v1/bookings. Works for both registered users
// (token) and guests (contact triple in the body).
func (c *Controller) Submit(ctx *gin.Context) {
	var req SubmitBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	req.UserID = middleware.CurrentUserID(ctx)

	confirmation, err := c.service.Submit(ctx.Request.Context(), req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking submitted successfully", confirmation, nil)
}

// GetBooking handles GET /api/v1/bookings/:id. Owners and admins only.
func (c *Controller) GetBooking(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), id)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	if !middleware.IsAdmin(ctx) {
		userID := middleware.CurrentUserID(ctx)
		if userID == nil || !booking.IsOwnedBy(*userID) {
			response.RespondJSON(ctx, "error", http.StatusForbidden, ErrNotOwner.Error(), nil, nil)
			return
		}
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

// GetMyBookings handles GET /api/v1/bookings
func (c *Controller) GetMyBookings(ctx *gin.Context) {
	userID := middleware.CurrentUserID(ctx)
	if userID == nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	query := parseListQuery(ctx)
	bookings, totalCount, err := c.service.GetUserBookings(ctx.Request.Context(), *userID, query)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", BookingListResponse{
		Bookings:   bookings,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(totalCount, query.Limit),
	}, nil)
}

// ListBookings handles GET /api/v1/admin/bookings
func (c *Controller) ListBookings(ctx *gin.Context) {
	query := parseListQuery(ctx)
	bookings, totalCount, err := c.service.GetAllBookings(ctx.Request.Context(), query)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", BookingListResponse{
		Bookings:   bookings,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(totalCount, query.Limit),
	}, nil)
}

// Confirm handles POST /api/v1/admin/bookings/:id/confirm
func (c *Controller) Confirm(ctx *gin.Context) {
	c.transition(ctx, c.service.Confirm, "Booking confirmed successfully")
}

// MarkDepositPaid handles POST /api/v1/admin/bookings/:id/deposit
func (c *Controller) MarkDepositPaid(ctx *gin.Context) {
	c.transition(ctx, c.service.MarkDepositPaid, "Deposit recorded successfully")
}

// Complete handles POST /api/v1/admin/bookings/:id/complete
func (c *Controller) Complete(ctx *gin.Context) {
	c.transition(ctx, c.service.Complete, "Booking completed successfully")
}

// Cancel handles POST /api/v1/bookings/:id/cancel and the admin variant.
func (c *Controller) Cancel(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	actor := CancelActor{
		UserID:  middleware.CurrentUserID(ctx),
		IsAdmin: middleware.IsAdmin(ctx),
	}
	if actor.UserID == nil && !actor.IsAdmin {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	if err := c.service.Cancel(ctx.Request.Context(), id, actor); err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking cancelled successfully", nil, nil)
}

// SetAdminNotes handles PUT /api/v1/admin/bookings/:id/notes
func (c *Controller) SetAdminNotes(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	var req AdminNotesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.SetAdminNotes(ctx.Request.Context(), id, req.Notes)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Notes updated successfully", booking, nil)
}

func (c *Controller) transition(ctx *gin.Context, op func(ctx context.Context, id uuid.UUID) (*Booking, error), message string) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	booking, err := op(ctx.Request.Context(), id)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, message, booking, nil)
}

func parseListQuery(ctx *gin.Context) BookingListQuery {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	return BookingListQuery{
		Status:   ctx.Query("status"),
		DateFrom: ctx.Query("date_from"),
		DateTo:   ctx.Query("date_to"),
		Page:     page,
		Limit:    limit,
	}
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrSlotUnavailable):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
	case errors.Is(err, ErrInvalidTransition):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
	case errors.Is(err, ErrNotOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, err.Error(), nil, nil)
	case errors.Is(err, ErrTooLateToCancel):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
	case errors.Is(err, ErrMissingIdentity),
		errors.Is(err, ErrPackageUnavailable),
		errors.Is(err, ErrRoleNotOffered),
		errors.Is(err, ErrMaidCountOutOfRange),
		errors.Is(err, ErrNoAttendees),
		errors.Is(err, ErrDateInPast),
		errors.Is(err, ErrZeroValueBooking),
		errors.Is(err, pricing.ErrNegativeCount),
		errors.Is(err, pricing.ErrNegativeTransport),
		errors.Is(err, locations.ErrInvalidLocation),
		errors.Is(err, locations.ErrInvalidDistance),
		errors.Is(err, locations.ErrLocationNotFound),
		errors.Is(err, calendar.ErrInvalidDate),
		errors.Is(err, calendar.ErrInvalidTime):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to process booking request", nil, err.Error())
	}
}
