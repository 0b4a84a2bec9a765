// internal/interfaces/http/handlers/gallery.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/gallery"
	"gorm.io/gorm"
)

// GalleryHandler handles gallery endpoints
type GalleryHandler struct {
	galleryService *gallery.Service
}

// NewGalleryHandler creates a new gallery handler
func NewGalleryHandler(db *gorm.DB, log *logrus.Logger) *GalleryHandler {
	return &GalleryHandler{
		galleryService: gallery.NewService(db, log),
	}
}

// List handles GET /gallery
func (h *GalleryHandler) List(c *gin.Context) {
	items, err := h.galleryService.List(c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve gallery"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Gallery retrieved successfully",
		"data":    items,
	})
}

// Create handles POST /admin/gallery
func (h *GalleryHandler) Create(c *gin.Context) {
	var req gallery.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.galleryService.Create(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create gallery item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Gallery item created successfully",
		"data":    item,
	})
}

// Update handles PUT /admin/gallery/:id
func (h *GalleryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid gallery item ID"})
		return
	}

	var req gallery.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.galleryService.Update(id, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Gallery item updated successfully",
		"data":    item,
	})
}

// Delete handles DELETE /admin/gallery/:id
func (h *GalleryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid gallery item ID"})
		return
	}

	if err := h.galleryService.Delete(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Gallery item deleted successfully",
	})
}
