// internal/domain/gallery/service.go
package gallery

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service manages gallery entries
type Service struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewService creates a new gallery service
func NewService(db *gorm.DB, log *logrus.Logger) *Service {
	return &Service{db: db, log: log}
}

// SaveRequest carries gallery entry data for create and update. The first
// image becomes the cover.
type SaveRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description *string  `json:"description"`
	Images      []string `json:"images" binding:"required,min=1"`
	Category    *string  `json:"category"`
}

// List returns gallery entries, newest first, optionally filtered by category
func (s *Service) List(category string) ([]Item, error) {
	query := s.db.Order("created_at desc")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var items []Item
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list gallery items: %w", err)
	}
	return items, nil
}

// Get retrieves a single gallery entry
func (s *Service) Get(id uuid.UUID) (*Item, error) {
	var item Item
	err := s.db.Where("id = ?", id).First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("gallery item not found")
		}
		return nil, fmt.Errorf("failed to retrieve gallery item: %w", err)
	}
	return &item, nil
}

// Create adds a gallery entry
func (s *Service) Create(req *SaveRequest) (*Item, error) {
	item := Item{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.Images[0],
		Images:      req.Images,
		Category:    req.Category,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create gallery item: %w", err)
	}

	s.log.WithField("gallery_id", item.ID).Info("Gallery item created")
	return &item, nil
}

// Update replaces a gallery entry's content
func (s *Service) Update(id uuid.UUID, req *SaveRequest) (*Item, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	item.Title = req.Title
	item.Description = req.Description
	item.ImageURL = req.Images[0]
	item.Images = req.Images
	item.Category = req.Category

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("failed to update gallery item: %w", err)
	}
	return item, nil
}

// Delete removes a gallery entry
func (s *Service) Delete(id uuid.UUID) error {
	result := s.db.Where("id = ?", id).Delete(&Item{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete gallery item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("gallery item not found")
	}
	return nil
}
