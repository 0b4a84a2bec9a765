// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/domain/settings"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	paymentService *payment.Service
	orderService   *order.Service
	log            *logrus.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *PaymentHandler {
	orderService := order.NewService(db, cfg, log)
	gateway := payment.NewGateway(cfg, log)
	settingsService := settings.NewService(db, log)

	return &PaymentHandler{
		paymentService: payment.NewService(gateway, settingsService, orderService, cfg, log),
		orderService:   orderService,
		log:            log,
	}
}

// Initiate handles POST /payment/orders/:id, opening a hosted payment
// session for the caller's own order.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	o, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	userEmail, _ := middleware.GetUserEmailFromContext(c)
	if o.UserEmail != userEmail && !middleware.IsAdminFromContext(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	session, err := h.paymentService.InitiateForOrder(c.Request.Context(), id, c.ClientIP())
	if errors.Is(err, payment.ErrPaymentDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment session opened",
		"data":    session,
	})
}

// Callback handles POST /payment/callback, the gateway's server-to-server
// notification. The gateway expects the literal body "OK" to stop retrying.
func (h *PaymentHandler) Callback(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "bad request")
		return
	}

	if err := h.paymentService.HandleCallback(c.Request.Context(), c.Request.PostForm); err != nil {
		h.log.WithError(err).Warn("Payment callback rejected")
		c.String(http.StatusBadRequest, "bad request")
		return
	}

	c.String(http.StatusOK, "OK")
}
