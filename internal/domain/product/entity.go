// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a catalog product
type Product struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string         `gorm:"not null;size:255" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	ImageURL      string         `gorm:"size:500" json:"image_url"`
	Category      string         `gorm:"size:100;index" json:"category"`
	Features      []string       `gorm:"serializer:json" json:"features"`
	Price         *float64       `json:"price,omitempty"`
	IsFeatured    bool           `gorm:"default:false" json:"is_featured"`
	FeaturedOrder int            `gorm:"default:0" json:"featured_order"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// BeforeCreate assigns a fresh id
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Snapshot returns the product fields carried inside a cart item.
// A nil price snapshots as zero, matching how the storefront treats
// products without a listed price.
func (p *Product) Snapshot() Snapshot {
	var price float64
	if p.Price != nil {
		price = *p.Price
	}
	return Snapshot{
		ID:       p.ID,
		Title:    p.Title,
		Price:    price,
		ImageURL: p.ImageURL,
	}
}

// Snapshot is the product view embedded in cart and order items
type Snapshot struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Price    float64   `json:"price"`
	ImageURL string    `json:"image_url"`
}
