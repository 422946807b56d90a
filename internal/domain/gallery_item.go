package domain

import "time"

// GalleryItem references an image stored in the object store.
type GalleryItem struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Caption   string    `json:"caption"`
	Path      string    `json:"-" gorm:"not null"`
	URL       string    `json:"url" gorm:"not null"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

func (GalleryItem) TableName() string { return "gallery_items" }
