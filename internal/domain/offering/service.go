// internal/domain/offering/service.go
package offering

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service manages the advertised service catalog
type Service struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewService creates a new offering service
func NewService(db *gorm.DB, log *logrus.Logger) *Service {
	return &Service{db: db, log: log}
}

// CreateRequest represents offering creation data
type CreateRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	ImageURL    string   `json:"image_url"`
	Price       *float64 `json:"price"`
	Features    []string `json:"features"`
}

// UpdateRequest represents offering update data
type UpdateRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Icon        *string  `json:"icon"`
	ImageURL    *string  `json:"image_url"`
	Price       *float64 `json:"price"`
	Features    []string `json:"features"`
}

// List returns all offerings, newest first
func (s *Service) List() ([]Offering, error) {
	var offerings []Offering
	if err := s.db.Order("created_at desc").Find(&offerings).Error; err != nil {
		return nil, fmt.Errorf("failed to list offerings: %w", err)
	}
	return offerings, nil
}

// Get retrieves a single offering by id
func (s *Service) Get(id uuid.UUID) (*Offering, error) {
	var o Offering
	err := s.db.Where("id = ?", id).First(&o).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("offering not found")
		}
		return nil, fmt.Errorf("failed to retrieve offering: %w", err)
	}
	return &o, nil
}

// Create creates a new offering
func (s *Service) Create(req *CreateRequest) (*Offering, error) {
	o := Offering{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Features:    req.Features,
	}
	if err := s.db.Create(&o).Error; err != nil {
		return nil, fmt.Errorf("failed to create offering: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"offering_id": o.ID,
		"title":       o.Title,
	}).Info("Offering created")

	return &o, nil
}

// Update applies the non-nil fields of req to an existing offering
func (s *Service) Update(id uuid.UUID, req *UpdateRequest) (*Offering, error) {
	o, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		o.Title = *req.Title
	}
	if req.Description != nil {
		o.Description = *req.Description
	}
	if req.Icon != nil {
		o.Icon = *req.Icon
	}
	if req.ImageURL != nil {
		o.ImageURL = *req.ImageURL
	}
	if req.Price != nil {
		o.Price = req.Price
	}
	if req.Features != nil {
		o.Features = req.Features
	}

	if err := s.db.Save(o).Error; err != nil {
		return nil, fmt.Errorf("failed to update offering: %w", err)
	}
	return o, nil
}

// Delete removes an offering
func (s *Service) Delete(id uuid.UUID) error {
	result := s.db.Where("id = ?", id).Delete(&Offering{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete offering: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("offering not found")
	}
	return nil
}
