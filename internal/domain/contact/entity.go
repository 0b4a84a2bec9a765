// internal/domain/contact/entity.go
package contact

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact request status values
const (
	StatusPending   = "pending"
	StatusContacted = "contacted"
	StatusCompleted = "completed"
)

// ValidStatus reports whether s is a known contact request status
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusContacted, StatusCompleted:
		return true
	}
	return false
}

// Request is a contact form submission. Notes accumulate the back-office
// follow-up history.
type Request struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Email       string    `gorm:"not null;size:255" json:"email"`
	Phone       string    `gorm:"size:50" json:"phone"`
	Message     string    `gorm:"type:text" json:"message"`
	ServiceType string    `gorm:"size:100" json:"service_type"`
	Status      string    `gorm:"not null;default:'pending';size:20" json:"status"`
	Notes       []string  `gorm:"serializer:json" json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Request) TableName() string {
	return "contact_forms"
}

// BeforeCreate assigns a fresh id
func (r *Request) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
