// internal/domain/settings/service.go
package settings

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Defaults for a fresh installation.
const (
	DefaultCompanyName     = "TGuard Teknoloji"
	DefaultPrimaryColor    = "#2563eb"
	DefaultWhatsappMessage = "Merhaba, bilgi almak istiyorum."
)

// Service manages the site settings singleton
type Service struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewService creates a new settings service
func NewService(db *gorm.DB, log *logrus.Logger) *Service {
	return &Service{db: db, log: log}
}

// Get returns the settings row, creating it with defaults when the table
// is still empty.
func (s *Service) Get() (*SiteSettings, error) {
	var settings SiteSettings
	err := s.db.First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		settings = SiteSettings{
			CompanyName:     DefaultCompanyName,
			PrimaryColor:    DefaultPrimaryColor,
			WhatsappMessage: DefaultWhatsappMessage,
			TestMode:        true,
			MaxInstallment:  12,
		}
		if err := s.db.Create(&settings).Error; err != nil {
			return nil, fmt.Errorf("failed to create default site settings: %w", err)
		}
		s.log.Info("Created default site settings")
		return &settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch site settings: %w", err)
	}
	return &settings, nil
}

// UpdateRequest patches the public site settings fields
type UpdateRequest struct {
	LogoURL         *string `json:"logo_url"`
	CompanyName     *string `json:"company_name"`
	PrimaryColor    *string `json:"primary_color"`
	ContactPhone    *string `json:"contact_phone"`
	ContactEmail    *string `json:"contact_email"`
	ContactAddress  *string `json:"contact_address"`
	SocialFacebook  *string `json:"social_facebook"`
	SocialInstagram *string `json:"social_instagram"`
	SocialWhatsapp  *string `json:"social_whatsapp"`
	WhatsappMessage *string `json:"whatsapp_message"`
	StatsCustomers  *string `json:"stats_customers"`
	StatsProjects   *string `json:"stats_projects"`
	StatsExperience *string `json:"stats_experience"`
	StatsSupport    *string `json:"stats_support"`
}

// Update applies the non-nil fields of req to the singleton
func (s *Service) Update(req *UpdateRequest) (*SiteSettings, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&settings.LogoURL, req.LogoURL)
	apply(&settings.CompanyName, req.CompanyName)
	apply(&settings.PrimaryColor, req.PrimaryColor)
	apply(&settings.ContactPhone, req.ContactPhone)
	apply(&settings.ContactEmail, req.ContactEmail)
	apply(&settings.ContactAddress, req.ContactAddress)
	apply(&settings.SocialFacebook, req.SocialFacebook)
	apply(&settings.SocialInstagram, req.SocialInstagram)
	apply(&settings.SocialWhatsapp, req.SocialWhatsapp)
	apply(&settings.WhatsappMessage, req.WhatsappMessage)
	apply(&settings.StatsCustomers, req.StatsCustomers)
	apply(&settings.StatsProjects, req.StatsProjects)
	apply(&settings.StatsExperience, req.StatsExperience)
	apply(&settings.StatsSupport, req.StatsSupport)

	if err := s.db.Save(settings).Error; err != nil {
		return nil, fmt.Errorf("failed to update site settings: %w", err)
	}
	return settings, nil
}

// PaymentSettings is the admin view of the gateway configuration
type PaymentSettings struct {
	PaytrMerchantID   string `json:"paytr_merchant_id"`
	PaytrMerchantKey  string `json:"paytr_merchant_key"`
	PaytrMerchantSalt string `json:"paytr_merchant_salt"`
	PaymentEnabled    bool   `json:"payment_enabled"`
	TestMode          bool   `json:"test_mode"`
	MaxInstallment    int    `json:"max_installment"`
}

// GetPayment returns the gateway configuration slice of the singleton
func (s *Service) GetPayment() (*PaymentSettings, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	return &PaymentSettings{
		PaytrMerchantID:   settings.PaytrMerchantID,
		PaytrMerchantKey:  settings.PaytrMerchantKey,
		PaytrMerchantSalt: settings.PaytrMerchantSalt,
		PaymentEnabled:    settings.PaymentEnabled,
		TestMode:          settings.TestMode,
		MaxInstallment:    settings.MaxInstallment,
	}, nil
}

// UpdatePayment replaces the gateway configuration
func (s *Service) UpdatePayment(req *PaymentSettings) (*PaymentSettings, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	settings.PaytrMerchantID = req.PaytrMerchantID
	settings.PaytrMerchantKey = req.PaytrMerchantKey
	settings.PaytrMerchantSalt = req.PaytrMerchantSalt
	settings.PaymentEnabled = req.PaymentEnabled
	settings.TestMode = req.TestMode
	settings.MaxInstallment = req.MaxInstallment

	if err := s.db.Save(settings).Error; err != nil {
		return nil, fmt.Errorf("failed to update payment settings: %w", err)
	}

	s.log.Info("Payment settings updated")
	return s.GetPayment()
}
