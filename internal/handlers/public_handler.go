package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/jakescarcare/valet-api/internal/domain/booking"
	"github.com/jakescarcare/valet-api/internal/httperr"
	"github.com/jakescarcare/valet-api/internal/timezone"
	ucBooking "github.com/jakescarcare/valet-api/internal/usecase/booking"
	"github.com/jakescarcare/valet-api/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	availability    *ucBooking.GetAvailability
	selectableDates *ucBooking.ListSelectableDates
	createBooking   *ucBooking.CreateBooking
}

func NewPublicHandler(
	availability *ucBooking.GetAvailability,
	selectableDates *ucBooking.ListSelectableDates,
	createBooking *ucBooking.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		availability:    availability,
		selectableDates: selectableDates,
		createBooking:   createBooking,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type CreateBookingRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Eircode string `json:"eircode" binding:"required"`

	Service          string `json:"service" binding:"required"`
	Date             string `json:"date" binding:"required"` // YYYY-MM-DD
	Time             string `json:"time" binding:"required"` // HH:mm
	IronFalloutAddon bool   `json:"iron_fallout_addon"`

	Message string `json:"message"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	type serviceInfo struct {
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		DurationMin int     `json:"duration_min"`
		AddonOK     bool    `json:"addon_available"`
	}

	services := make([]serviceInfo, 0, len(domain.Services))
	for _, s := range domain.Services {
		services = append(services, serviceInfo{
			Name:        s,
			Price:       domain.BasePrice(s),
			DurationMin: domain.BaseDurationMin(s),
			AddonOK:     domain.AddonAllowed(s),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"addon": gin.H{
			"name":         domain.AddonIronFallout,
			"price":        domain.AddonPrice,
			"duration_min": domain.AddonDurationMin,
		},
		"times": domain.AvailableTimes,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	service := c.Query("service")
	ironFallout := c.Query("iron_fallout") == "true"

	if date == "" || service == "" {
		httperr.BadRequest(c, "missing_params", "Date and service are required.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), date, service, ironFallout)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_service"):
			httperr.BadRequest(c, "invalid_service", "Unknown service.")
		case httperr.IsBusiness(err, "addon_not_allowed"):
			httperr.BadRequest(c, "addon_not_allowed", "The iron fallout treatment is not available for this service.")
		case httperr.IsBusiness(err, "invalid_date"):
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
		default:
			httperr.Internal(c, "availability_failed", "Could not calculate availability.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}

func (h *PublicHandler) SelectableDates(c *gin.Context) {
	from := c.DefaultQuery("from", timezone.Tomorrow())
	to := c.Query("to")
	if to == "" {
		httperr.BadRequest(c, "missing_params", "The to date is required.")
		return
	}

	dates, err := h.selectableDates.Execute(c.Request.Context(), from, to)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_date"):
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
		case httperr.IsBusiness(err, "invalid_date_range"):
			httperr.BadRequest(c, "invalid_date_range", "Invalid date range.")
		default:
			httperr.Internal(c, "dates_failed", "Could not calculate selectable dates.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

////////////////////////////////////////////////////////
// CREATE BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking data.")
		return
	}

	if !validators.IsEmailDomainValid(req.Email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	b, err := h.createBooking.Execute(
		c.Request.Context(),
		ucBooking.CreateBookingInput{
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

// mapBookingError translates the submission protocol errors into responses.
// Slot races surface as 409 so the form can refresh its availability.
func mapBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "missing_required_field"):
		httperr.BadRequest(c, "missing_required_field", "Name, phone, email and Eircode are required.")
	case httperr.IsBusiness(err, "invalid_service"):
		httperr.BadRequest(c, "invalid_service", "Unknown service.")
	case httperr.IsBusiness(err, "invalid_time"):
		httperr.BadRequest(c, "invalid_time", "Invalid booking time.")
	case httperr.IsBusiness(err, "invalid_date"):
		httperr.BadRequest(c, "invalid_date", "Invalid booking date.")
	case httperr.IsBusiness(err, "addon_not_allowed"):
		httperr.BadRequest(c, "addon_not_allowed", "The iron fallout treatment is not available for this service.")
	case httperr.IsBusiness(err, "date_too_soon"):
		httperr.BadRequest(c, "date_too_soon", "Bookings must be made at least one day in advance.")
	case httperr.IsBusiness(err, "duplicate_booking"):
		httperr.Conflict(c, "duplicate_booking", "This booking already exists.")
	case httperr.IsBusiness(err, "slot_unavailable"):
		httperr.Conflict(c, "slot_unavailable", "That time has just been taken. Please pick another slot.")
	case httperr.IsBusiness(err, "slot_conflict"):
		httperr.Conflict(c, "slot_conflict", "The service does not fit before the next booking. Please pick another slot.")
	case httperr.IsBusiness(err, "past_day_end"):
		httperr.Conflict(c, "past_day_end", "The service does not finish before the end of the day. Please pick an earlier slot.")
	default:
		httperr.Internal(c, "failed_to_create_booking", "Could not create the booking.")
	}
}
