package models

import "time"

// Gallery item kinds.
const (
	GalleryKindSingle      = "single"
	GalleryKindBeforeAfter = "before_after"
	GalleryKindVideo       = "video"
)

// Gallery categories shown on the site.
var GalleryCategories = []string{"before_after", "interiors", "exteriors", "videos"}

// GalleryItem describes one media entry. The binary lives in the object
// store under ObjectKey (plus an optional ThumbKey for images); only the
// descriptor lives in the database.
type GalleryItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Category    string `gorm:"size:20;not null;index" json:"category"`
	Label       string `gorm:"size:100" json:"label"`
	Description string `gorm:"size:255" json:"description"`
	Kind        string `gorm:"size:20;not null" json:"kind"`

	ObjectKey   string `gorm:"size:255;not null" json:"object_key"`
	ThumbKey    string `gorm:"size:255" json:"thumb_key"`
	ContentType string `gorm:"size:100" json:"content_type"`

	// Lower numbers appear first; zero means "after everything ordered".
	DisplayOrder int `gorm:"default:0" json:"display_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
