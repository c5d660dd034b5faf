package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jakescarcare/valet-api/internal/audit"
	domain "github.com/jakescarcare/valet-api/internal/domain/booking"
	"github.com/jakescarcare/valet-api/internal/httperr"
	"github.com/jakescarcare/valet-api/internal/httpresp"
	"github.com/jakescarcare/valet-api/internal/middleware"
	"github.com/jakescarcare/valet-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// ReviewHandler covers both sides of the moderation queue: the public
// site submits and reads approved reviews, the admin panel sees and
// moderates everything.
type ReviewHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewReviewHandler(db *gorm.DB, auditDisp *audit.Dispatcher) *ReviewHandler {
	return &ReviewHandler{db: db, audit: auditDisp}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReviewRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	Rating        int    `json:"rating" binding:"required,min=1,max=5"`
	Review        string `json:"review" binding:"required,max=500"`
	Service       string `json:"service"`
}

type SetApprovedRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *ReviewHandler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid review data.")
		return
	}

	if req.Service != "" && !domain.IsValidService(req.Service) {
		httperr.BadRequest(c, "invalid_service", "Unknown service.")
		return
	}

	review := models.Review{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Rating:        req.Rating,
		Review:        req.Review,
		Service:       req.Service,
	}

	if err := h.db.Create(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_create_review", "Could not submit the review.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "review_submitted",
		Entity:   "review",
		EntityID: &review.ID,
	})

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) ListApproved(c *gin.Context) {
	var reviews []models.Review
	if err := h.db.
		Where("approved = true").
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {

		httperr.Internal(c, "failed_to_list_reviews", "Could not list reviews.")
		return
	}

	httpresp.List(c, reviews)
}

// ======================================================
// ADMIN
// ======================================================

func (h *ReviewHandler) ListAll(c *gin.Context) {
	q := h.db.Order("created_at DESC")

	// pending=true narrows to the moderation queue
	if c.Query("pending") == "true" {
		q = q.Where("approved = false")
	}

	var reviews []models.Review
	if err := q.Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Could not list reviews.")
		return
	}

	httpresp.List(c, reviews)
}

func (h *ReviewHandler) SetApproved(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid review identifier.")
		return
	}

	var req SetApprovedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid data.")
		return
	}

	var review models.Review
	if err := h.db.First(&review, id).Error; err != nil {
		httperr.NotFound(c, "review_not_found", "Review not found.")
		return
	}

	review.Approved = *req.Approved
	if err := h.db.Save(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_update_review", "Could not update the review.")
		return
	}

	action := "review_approved"
	if !review.Approved {
		action = "review_hidden"
	}
	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   action,
		Entity:   "review",
		EntityID: &review.ID,
	})

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid review identifier.")
		return
	}

	var review models.Review
	if err := h.db.First(&review, id).Error; err != nil {
		httperr.NotFound(c, "review_not_found", "Review not found.")
		return
	}

	if err := h.db.Delete(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_review", "Could not delete the review.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "review_deleted",
		Entity:   "review",
		EntityID: &id,
	})

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
