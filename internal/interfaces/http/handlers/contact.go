// internal/interfaces/http/handlers/contact.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/contact"
	"github.com/your-org/storefront-backend/internal/pkg/email"
	"gorm.io/gorm"
)

// ContactHandler handles contact request endpoints
type ContactHandler struct {
	contactService *contact.Service
	mailer         *email.Mailer
	log            *logrus.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contact.NewService(db, log),
		mailer:         email.NewMailer(cfg, log),
		log:            log,
	}
}

// Submit handles POST /contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contact.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	r, err := h.contactService.Submit(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit contact request"})
		return
	}

	if err := h.mailer.SendContactNotification(r); err != nil {
		h.log.WithError(err).Warn("Contact notification email failed")
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent successfully",
		"data":    r,
	})
}

// List handles GET /admin/contact-requests
func (h *ContactHandler) List(c *gin.Context) {
	requests, err := h.contactService.List(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contact requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contact requests retrieved successfully",
		"data":    requests,
	})
}

// UpdateStatus handles PUT /admin/contact-requests/:id/status
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact request ID"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	r, err := h.contactService.UpdateStatus(id, req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contact request updated successfully",
		"data":    r,
	})
}

// AddNoteRequest is the follow-up note payload
type AddNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// AddNote handles POST /admin/contact-requests/:id/notes
func (h *ContactHandler) AddNote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact request ID"})
		return
	}

	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	r, err := h.contactService.AddNote(id, req.Note)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Note added successfully",
		"data":    r,
	})
}

// Delete handles DELETE /admin/contact-requests/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact request ID"})
		return
	}

	if err := h.contactService.Delete(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contact request deleted successfully",
	})
}
