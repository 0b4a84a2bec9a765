// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order status values
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
)

// ValidStatus reports whether s is a known order status
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// Order represents a submitted order. Contact details are captured at
// submission time rather than referenced from the user profile, so the
// order keeps what the buyer entered even if the profile changes later.
type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserEmail   string    `gorm:"not null;index;size:255" json:"user_email"`
	FullName    string    `gorm:"not null;size:255" json:"full_name"`
	Phone       string    `gorm:"not null;size:50" json:"phone"`
	Address     string    `gorm:"not null" json:"address"`
	City        string    `gorm:"not null;size:100" json:"city"`
	CompanyName *string   `gorm:"size:255" json:"company_name,omitempty"`
	TaxOffice   *string   `gorm:"size:255" json:"tax_office,omitempty"`
	TaxNumber   *string   `gorm:"size:100" json:"tax_number,omitempty"`
	TotalAmount float64   `gorm:"not null" json:"total_amount"`
	Status      string    `gorm:"not null;default:'pending';size:20" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate assigns a fresh id
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is a line of a submitted order. Price is the unit price at the
// time of submission.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Title     string    `gorm:"not null;size:255" json:"title"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// BeforeCreate assigns a fresh id
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
