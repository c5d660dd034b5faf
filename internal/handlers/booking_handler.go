package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/jakescarcare/valet-api/internal/domain/booking"
	"github.com/jakescarcare/valet-api/internal/httperr"
	"github.com/jakescarcare/valet-api/internal/httpresp"
	"github.com/jakescarcare/valet-api/internal/middleware"
	ucBooking "github.com/jakescarcare/valet-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	repo domain.Repository

	createAdmin  *ucBooking.CreateAdminBooking
	setCompleted *ucBooking.SetCompleted
	setPrice     *ucBooking.SetPrice
	delete       *ucBooking.DeleteBooking
}

func NewBookingHandler(
	repo domain.Repository,
	createAdmin *ucBooking.CreateAdminBooking,
	setCompleted *ucBooking.SetCompleted,
	setPrice *ucBooking.SetPrice,
	deleteUC *ucBooking.DeleteBooking,
) *BookingHandler {
	return &BookingHandler{
		repo:         repo,
		createAdmin:  createAdmin,
		setCompleted: setCompleted,
		setPrice:     setPrice,
		delete:       deleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AdminCreateBookingRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email"`
	Eircode string `json:"eircode"`

	Service          string `json:"service" binding:"required"`
	Date             string `json:"date" binding:"required"`
	Time             string `json:"time" binding:"required"`
	IronFalloutAddon bool   `json:"iron_fallout_addon"`

	Message string `json:"message"`
}

type SetCompletedRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

type SetPriceRequest struct {
	CustomPrice *float64 `json:"custom_price"`
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	date := c.Query("date")

	if date != "" {
		bookings, err := h.repo.ListByDate(c.Request.Context(), date)
		if err != nil {
			httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
			return
		}
		httpresp.List(c, bookings)
		return
	}

	bookings, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}
	httpresp.List(c, bookings)
}

// ======================================================
// CREATE (ADMIN)
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req AdminCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking data.")
		return
	}

	b, err := h.createAdmin.Execute(
		c.Request.Context(),
		adminID,
		ucBooking.CreateAdminBookingInput{
			Name:             req.Name,
			Phone:            req.Phone,
			Email:            req.Email,
			Eircode:          req.Eircode,
			Service:          req.Service,
			Date:             req.Date,
			Time:             req.Time,
			IronFalloutAddon: req.IronFalloutAddon,
			Message:          req.Message,
		},
	)

	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// ======================================================
// COMPLETED FLAG
// ======================================================

func (h *BookingHandler) SetCompleted(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking identifier.")
		return
	}

	var req SetCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid data.")
		return
	}

	b, err := h.setCompleted.Execute(c.Request.Context(), adminID, id, *req.Completed)
	if err != nil {
		if httperr.IsBusiness(err, "booking_not_found") {
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
			return
		}
		httperr.Internal(c, "failed_to_update_booking", "Could not update the booking.")
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// PRICE OVERRIDE
// ======================================================

func (h *BookingHandler) SetPrice(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking identifier.")
		return
	}

	var req SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid data.")
		return
	}

	b, err := h.setPrice.Execute(c.Request.Context(), adminID, id, req.CustomPrice)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
		case httperr.IsBusiness(err, "invalid_price"):
			httperr.BadRequest(c, "invalid_price", "Price must not be negative.")
		default:
			httperr.Internal(c, "failed_to_update_booking", "Could not update the booking.")
		}
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// DELETE
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking identifier.")
		return
	}

	if err := h.delete.Execute(c.Request.Context(), adminID, id); err != nil {
		if httperr.IsBusiness(err, "booking_not_found") {
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
			return
		}
		httperr.Internal(c, "failed_to_delete_booking", "Could not delete the booking.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// ======================================================
// HELPERS
// ======================================================

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err
}
