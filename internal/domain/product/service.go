// internal/domain/product/service.go
package product

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles product catalog logic
type Service struct {
	db     *gorm.DB
	config *config.Config
	log    *logrus.Logger
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		db:     db,
		config: cfg,
		log:    log,
	}
}

// ListRequest represents product list query parameters
type ListRequest struct {
	Category string `form:"category"`
	Featured bool   `form:"featured"`
}

// CreateProductRequest represents product creation data
type CreateProductRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"image_url"`
	Category      string   `json:"category"`
	Features      []string `json:"features"`
	Price         *float64 `json:"price"`
	IsFeatured    bool     `json:"is_featured"`
	FeaturedOrder int      `json:"featured_order"`
}

// UpdateProductRequest represents product update data
type UpdateProductRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	ImageURL      *string  `json:"image_url"`
	Category      *string  `json:"category"`
	Features      []string `json:"features"`
	Price         *float64 `json:"price"`
	IsFeatured    *bool    `json:"is_featured"`
	FeaturedOrder *int     `json:"featured_order"`
}

// List retrieves products, optionally filtered by category or featured flag.
// Featured products come back in featured_order; the rest newest first.
func (s *Service) List(req *ListRequest) ([]Product, error) {
	var products []Product

	query := s.db.Model(&Product{})
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}
	if req.Featured {
		query = query.Where("is_featured = ?", true).Order("featured_order asc")
	} else {
		query = query.Order("created_at desc")
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Get retrieves a single product by id
func (s *Service) Get(id uuid.UUID) (*Product, error) {
	var p Product
	result := s.db.Where("id = ?", id).First(&p)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &p, nil
}

// Categories returns the distinct non-empty product categories
func (s *Service) Categories() ([]string, error) {
	var categories []string
	err := s.db.Model(&Product{}).
		Where("category <> ''").
		Distinct("category").
		Order("category asc").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Create creates a new product
func (s *Service) Create(req *CreateProductRequest) (*Product, error) {
	p := Product{
		Title:         req.Title,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		Category:      req.Category,
		Features:      req.Features,
		Price:         req.Price,
		IsFeatured:    req.IsFeatured,
		FeaturedOrder: req.FeaturedOrder,
	}

	if err := s.db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"product_id": p.ID,
		"title":      p.Title,
	}).Info("Product created")

	return &p, nil
}

// Update applies the non-nil fields of req to an existing product
func (s *Service) Update(id uuid.UUID, req *UpdateProductRequest) (*Product, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Features != nil {
		p.Features = req.Features
	}
	if req.Price != nil {
		p.Price = req.Price
	}
	if req.IsFeatured != nil {
		p.IsFeatured = *req.IsFeatured
	}
	if req.FeaturedOrder != nil {
		p.FeaturedOrder = *req.FeaturedOrder
	}

	if err := s.db.Save(p).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return p, nil
}

// Delete soft-deletes a product
func (s *Service) Delete(id uuid.UUID) error {
	result := s.db.Where("id = ?", id).Delete(&Product{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}
