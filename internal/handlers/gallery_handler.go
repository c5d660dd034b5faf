package handlers

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jakescarcare/valet-api/internal/audit"
	"github.com/jakescarcare/valet-api/internal/httperr"
	"github.com/jakescarcare/valet-api/internal/media"
	"github.com/jakescarcare/valet-api/internal/middleware"
	"github.com/jakescarcare/valet-api/internal/models"
	"github.com/jakescarcare/valet-api/internal/storage"
)

// ======================================================
// HANDLER
// ======================================================

const maxUploadBytes = 50 << 20 // videos of finished valets get large

type GalleryHandler struct {
	db    *gorm.DB
	store storage.ObjectStore
	audit *audit.Dispatcher
}

func NewGalleryHandler(db *gorm.DB, store storage.ObjectStore, auditDisp *audit.Dispatcher) *GalleryHandler {
	return &GalleryHandler{db: db, store: store, audit: auditDisp}
}

// ======================================================
// DTOs
// ======================================================

type GalleryItemResponse struct {
	models.GalleryItem
	URL      string `json:"url"`
	ThumbURL string `json:"thumb_url,omitempty"`
}

type UpdateGalleryItemRequest struct {
	Category     *string `json:"category"`
	Label        *string `json:"label"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"display_order"`
}

type ReorderGalleryRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// ======================================================
// PUBLIC LIST
// ======================================================

func (h *GalleryHandler) List(c *gin.Context) {
	q := h.db.Order("display_order ASC, created_at DESC")

	if category := c.Query("category"); category != "" {
		if !validCategory(category) {
			httperr.BadRequest(c, "invalid_category", "Unknown gallery category.")
			return
		}
		q = q.Where("category = ?", category)
	}

	var items []models.GalleryItem
	if err := q.Find(&items).Error; err != nil {
		httperr.Internal(c, "failed_to_list_gallery", "Could not list the gallery.")
		return
	}

	out := make([]GalleryItemResponse, 0, len(items))
	for _, item := range items {
		url, err := h.store.URL(c.Request.Context(), item.ObjectKey)
		if err != nil {
			httperr.Internal(c, "failed_to_sign_media", "Could not generate media links.")
			return
		}
		thumbURL, err := h.store.URL(c.Request.Context(), item.ThumbKey)
		if err != nil {
			httperr.Internal(c, "failed_to_sign_media", "Could not generate media links.")
			return
		}

		out = append(out, GalleryItemResponse{
			GalleryItem: item,
			URL:         url,
			ThumbURL:    thumbURL,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": models.GalleryCategories,
		"items":      out,
	})
}

// ======================================================
// UPLOAD
// ======================================================

func (h *GalleryHandler) Upload(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	category := c.PostForm("category")
	if !validCategory(category) {
		httperr.BadRequest(c, "invalid_category", "Unknown gallery category.")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "A media file is required.")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "The file is too large.")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	kind := kindFor(contentType, c.PostForm("kind"))
	if kind == "" {
		httperr.BadRequest(c, "unsupported_media", "Only images and MP4 videos are supported.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_upload", "Could not read the upload.")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	key := "gallery/" + uuid.NewString() + ext

	var thumbKey string
	if media.IsImageContentType(contentType) {
		// Images are small enough to buffer; the decoder needs a full read
		// and the original still has to reach the store untouched.
		raw, err := io.ReadAll(file)
		if err != nil {
			httperr.Internal(c, "failed_to_read_upload", "Could not read the upload.")
			return
		}

		thumb, err := media.Thumbnail(bytes.NewReader(raw))
		if err != nil {
			httperr.BadRequest(c, "invalid_image", "The image could not be processed.")
			return
		}

		thumbKey = "gallery/thumbs/" + uuid.NewString() + ".webp"
		if err := h.store.Put(c.Request.Context(), thumbKey, bytes.NewReader(thumb), "image/webp"); err != nil {
			httperr.Internal(c, "failed_to_store_media", "Could not store the media.")
			return
		}

		if err := h.store.Put(c.Request.Context(), key, bytes.NewReader(raw), contentType); err != nil {
			httperr.Internal(c, "failed_to_store_media", "Could not store the media.")
			return
		}
	} else {
		if err := h.store.Put(c.Request.Context(), key, file, contentType); err != nil {
			httperr.Internal(c, "failed_to_store_media", "Could not store the media.")
			return
		}
	}

	item := models.GalleryItem{
		Category:    category,
		Label:       c.PostForm("label"),
		Description: c.PostForm("description"),
		Kind:        kind,
		ObjectKey:   key,
		ThumbKey:    thumbKey,
		ContentType: contentType,
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_create_gallery_item", "Could not save the gallery item.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "gallery_item_uploaded",
		Entity:   "gallery_item",
		EntityID: &item.ID,
		Metadata: map[string]any{"category": category, "kind": kind},
	})

	c.JSON(http.StatusCreated, item)
}

// ======================================================
// UPDATE / REORDER / DELETE
// ======================================================

func (h *GalleryHandler) Update(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid gallery item identifier.")
		return
	}

	var req UpdateGalleryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid data.")
		return
	}

	var item models.GalleryItem
	if err := h.db.First(&item, id).Error; err != nil {
		httperr.NotFound(c, "gallery_item_not_found", "Gallery item not found.")
		return
	}

	if req.Category != nil {
		if !validCategory(*req.Category) {
			httperr.BadRequest(c, "invalid_category", "Unknown gallery category.")
			return
		}
		item.Category = *req.Category
	}
	if req.Label != nil {
		item.Label = *req.Label
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.DisplayOrder != nil {
		item.DisplayOrder = *req.DisplayOrder
	}

	if err := h.db.Save(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_update_gallery_item", "Could not update the gallery item.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "gallery_item_updated",
		Entity:   "gallery_item",
		EntityID: &item.ID,
	})

	c.JSON(http.StatusOK, item)
}

func (h *GalleryHandler) Reorder(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req ReorderGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid data.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range req.IDs {
			if err := tx.
				Model(&models.GalleryItem{}).
				Where("id = ?", id).
				Update("display_order", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_reorder_gallery", "Could not reorder the gallery.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "gallery_reordered",
		Entity:   "gallery_item",
		Metadata: map[string]any{"count": len(req.IDs)},
	})

	c.JSON(http.StatusOK, gin.H{"reordered": len(req.IDs)})
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid gallery item identifier.")
		return
	}

	var item models.GalleryItem
	if err := h.db.First(&item, id).Error; err != nil {
		httperr.NotFound(c, "gallery_item_not_found", "Gallery item not found.")
		return
	}

	if err := h.db.Delete(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_gallery_item", "Could not delete the gallery item.")
		return
	}

	// Best effort; an orphaned object costs cents, a failed delete response
	// confuses the admin panel.
	if err := h.store.Delete(c.Request.Context(), item.ObjectKey); err != nil {
		log.Println("gallery object delete error:", err)
	}
	if err := h.store.Delete(c.Request.Context(), item.ThumbKey); err != nil {
		log.Println("gallery thumb delete error:", err)
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "gallery_item_deleted",
		Entity:   "gallery_item",
		EntityID: &id,
	})

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// ======================================================
// HELPERS
// ======================================================

func validCategory(category string) bool {
	for _, c := range models.GalleryCategories {
		if c == category {
			return true
		}
	}
	return false
}

func kindFor(contentType, requested string) string {
	switch {
	case contentType == "video/mp4":
		return models.GalleryKindVideo
	case media.IsImageContentType(contentType):
		if requested == models.GalleryKindBeforeAfter {
			return models.GalleryKindBeforeAfter
		}
		return models.GalleryKindSingle
	}
	return ""
}
