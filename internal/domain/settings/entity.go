// internal/domain/settings/entity.go
package settings

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SiteSettings is the singleton row carrying the site's branding, contact
// channels, homepage statistics and payment gateway configuration. It is
// created with defaults on first read if absent.
type SiteSettings struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LogoURL        string    `gorm:"size:512" json:"logo_url"`
	CompanyName    string    `gorm:"size:255" json:"company_name"`
	PrimaryColor   string    `gorm:"size:20" json:"primary_color"`
	ContactPhone   string    `gorm:"size:50" json:"contact_phone"`
	ContactEmail   string    `gorm:"size:255" json:"contact_email"`
	ContactAddress string    `gorm:"type:text" json:"contact_address"`

	SocialFacebook  string `gorm:"size:512" json:"social_facebook"`
	SocialInstagram string `gorm:"size:512" json:"social_instagram"`
	SocialWhatsapp  string `gorm:"size:50" json:"social_whatsapp"`
	WhatsappMessage string `gorm:"size:512" json:"whatsapp_message"`

	StatsCustomers  string `gorm:"size:50" json:"stats_customers"`
	StatsProjects   string `gorm:"size:50" json:"stats_projects"`
	StatsExperience string `gorm:"size:50" json:"stats_experience"`
	StatsSupport    string `gorm:"size:50" json:"stats_support"`

	// Payment gateway settings are back-office only and never serialized
	// into public responses.
	PaytrMerchantID   string `gorm:"size:100" json:"-"`
	PaytrMerchantKey  string `gorm:"size:255" json:"-"`
	PaytrMerchantSalt string `gorm:"size:255" json:"-"`
	PaymentEnabled    bool   `gorm:"default:false" json:"-"`
	TestMode          bool   `gorm:"default:true" json:"-"`
	MaxInstallment    int    `gorm:"default:12" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (SiteSettings) TableName() string {
	return "site_settings"
}

// BeforeCreate assigns a fresh id
func (s *SiteSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
