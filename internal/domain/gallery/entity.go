// internal/domain/gallery/entity.go
package gallery

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item is a gallery entry. ImageURL is the cover image; Images holds every
// uploaded image including the cover.
type Item struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null;size:255" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"not null;size:512" json:"image_url"`
	Images      []string  `gorm:"serializer:json" json:"images"`
	Category    *string   `gorm:"size:100" json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Item) TableName() string {
	return "gallery"
}

// BeforeCreate assigns a fresh id
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
