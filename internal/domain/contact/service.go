// internal/domain/contact/service.go
package contact

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service manages contact form submissions and their back-office workflow
type Service struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewService creates a new contact service
func NewService(db *gorm.DB, log *logrus.Logger) *Service {
	return &Service{db: db, log: log}
}

// SubmitRequest is the public contact form payload
type SubmitRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	Message     string `json:"message" binding:"required"`
	ServiceType string `json:"service_type"`
}

// Submit stores a new contact request with pending status and empty notes
func (s *Service) Submit(req *SubmitRequest) (*Request, error) {
	r := Request{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Message:     req.Message,
		ServiceType: req.ServiceType,
		Status:      StatusPending,
		Notes:       []string{},
	}
	if err := s.db.Create(&r).Error; err != nil {
		return nil, fmt.Errorf("failed to submit contact request: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"request_id":   r.ID,
		"service_type": r.ServiceType,
	}).Info("Contact request received")

	return &r, nil
}

// List returns contact requests, newest first, optionally filtered by status
func (s *Service) List(status string) ([]Request, error) {
	query := s.db.Order("created_at desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []Request
	if err := query.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list contact requests: %w", err)
	}
	return requests, nil
}

// Get retrieves a single contact request
func (s *Service) Get(id uuid.UUID) (*Request, error) {
	var r Request
	err := s.db.Where("id = ?", id).First(&r).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("contact request not found")
		}
		return nil, fmt.Errorf("failed to retrieve contact request: %w", err)
	}
	return &r, nil
}

// UpdateStatus moves a contact request through the follow-up workflow
func (s *Service) UpdateStatus(id uuid.UUID, status string) (*Request, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("invalid contact request status: %s", status)
	}

	result := s.db.Model(&Request{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update contact request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("contact request not found")
	}
	return s.Get(id)
}

// AddNote appends a follow-up note to the request
func (s *Service) AddNote(id uuid.UUID, note string) (*Request, error) {
	if note == "" {
		return nil, fmt.Errorf("note cannot be empty")
	}

	r, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	r.Notes = append(r.Notes, note)
	if err := s.db.Save(r).Error; err != nil {
		return nil, fmt.Errorf("failed to add note: %w", err)
	}
	return r, nil
}

// Delete removes a contact request
func (s *Service) Delete(id uuid.UUID) error {
	result := s.db.Where("id = ?", id).Delete(&Request{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete contact request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("contact request not found")
	}
	return nil
}
