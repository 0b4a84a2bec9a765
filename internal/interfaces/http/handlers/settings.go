// internal/interfaces/http/handlers/settings.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/settings"
	"gorm.io/gorm"
)

// SettingsHandler handles site settings endpoints
type SettingsHandler struct {
	settingsService *settings.Service
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(db *gorm.DB, log *logrus.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settings.NewService(db, log),
	}
}

// Get handles GET /settings. The payment credentials never appear here;
// the entity hides them from JSON.
func (h *SettingsHandler) Get(c *gin.Context) {
	site, err := h.settingsService.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve site settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Site settings retrieved successfully",
		"data":    site,
	})
}

// Update handles PUT /admin/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req settings.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	site, err := h.settingsService.Update(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update site settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Site settings updated successfully",
		"data":    site,
	})
}

// GetPayment handles GET /admin/settings/payment
func (h *SettingsHandler) GetPayment(c *gin.Context) {
	ps, err := h.settingsService.GetPayment()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payment settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment settings retrieved successfully",
		"data":    ps,
	})
}

// UpdatePayment handles PUT /admin/settings/payment
func (h *SettingsHandler) UpdatePayment(c *gin.Context) {
	var req settings.PaymentSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ps, err := h.settingsService.UpdatePayment(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment settings updated successfully",
		"data":    ps,
	})
}
