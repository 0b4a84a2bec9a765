// internal/domain/offering/entity.go
package offering

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Offering is a marketed service the company advertises, such as
// installation or maintenance work. Icon holds the inline SVG markup the
// frontend renders next to the title.
type Offering struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null;size:255" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"type:text" json:"icon"`
	ImageURL    string    `gorm:"size:512" json:"image_url,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Features    []string  `gorm:"serializer:json" json:"features"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Offering) TableName() string {
	return "services"
}

// BeforeCreate assigns a fresh id
func (o *Offering) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
