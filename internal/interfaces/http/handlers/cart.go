// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService    *cart.Service
	productService *product.Service
	config         *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) *CartHandler {
	return &CartHandler{
		cartService:    cart.NewService(db, redisClient, cfg, log),
		productService: product.NewService(db, cfg, log),
		config:         cfg,
	}
}

// notification is a user-facing message collected during a cart operation
type notification struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// collectingNotifier gathers notifications so the response can carry them
// back to the client, which renders them as toasts.
type collectingNotifier struct {
	notifications []notification
}

func (n *collectingNotifier) Success(message string) {
	n.notifications = append(n.notifications, notification{Kind: "success", Message: message})
}

func (n *collectingNotifier) Error(message string) {
	n.notifications = append(n.notifications, notification{Kind: "error", Message: message})
}

func (h *CartHandler) manager(c *gin.Context) (*cart.Manager, *collectingNotifier) {
	userEmail, _ := middleware.GetUserEmailFromContext(c)
	sessionID := middleware.GetSessionIDFromContext(c)
	notifier := &collectingNotifier{}
	return h.cartService.ManagerFor(userEmail, sessionID, notifier), notifier
}

func cartResponse(m *cart.Manager, n *collectingNotifier) gin.H {
	resp := gin.H{
		"status": m.Status(),
		"items":  m.Items(),
		"total":  m.Total(),
	}
	if m.CartID() != uuid.Nil {
		resp["cart_id"] = m.CartID()
	}
	if m.Status() == cart.StatusFailed {
		resp["reason"] = m.FailureReason()
	}
	if len(n.notifications) > 0 {
		resp["notifications"] = n.notifications
	}
	return resp
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	m, notifier := h.manager(c)
	m.Load(c.Request.Context())

	if m.Status() == cart.StatusFailed {
		c.JSON(http.StatusInternalServerError, cartResponse(m, notifier))
		return
	}
	c.JSON(http.StatusOK, cartResponse(m, notifier))
}

// AddItemRequest is the add-to-cart payload
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	p, err := h.productService.Get(req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	m, notifier := h.manager(c)
	m.Load(c.Request.Context())
	if m.Status() == cart.StatusFailed {
		c.JSON(http.StatusInternalServerError, cartResponse(m, notifier))
		return
	}

	m.AddItem(c.Request.Context(), p.Snapshot())
	c.JSON(http.StatusOK, cartResponse(m, notifier))
}

// UpdateItemRequest is the quantity-change payload
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	m, notifier := h.manager(c)
	m.Load(c.Request.Context())
	if m.Status() == cart.StatusFailed {
		c.JSON(http.StatusInternalServerError, cartResponse(m, notifier))
		return
	}

	m.UpdateQuantity(c.Request.Context(), itemID, req.Quantity)
	c.JSON(http.StatusOK, cartResponse(m, notifier))
}

// RemoveItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	m, notifier := h.manager(c)
	m.Load(c.Request.Context())
	if m.Status() == cart.StatusFailed {
		c.JSON(http.StatusInternalServerError, cartResponse(m, notifier))
		return
	}

	m.RemoveItem(c.Request.Context(), itemID)
	c.JSON(http.StatusOK, cartResponse(m, notifier))
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	m, notifier := h.manager(c)
	m.Load(c.Request.Context())
	if m.Status() == cart.StatusFailed {
		c.JSON(http.StatusInternalServerError, cartResponse(m, notifier))
		return
	}

	m.Clear(c.Request.Context())
	c.JSON(http.StatusOK, cartResponse(m, notifier))
}

// Merge handles POST /cart/merge. It folds the anonymous session cart into
// the signed-in user's cart on explicit request.
func (h *CartHandler) Merge(c *gin.Context) {
	userEmail, ok := middleware.GetUserEmailFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	sessionID := middleware.GetSessionIDFromContext(c)

	if err := h.cartService.MergeSessionCart(c.Request.Context(), userEmail, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to merge cart"})
		return
	}

	m, notifier := h.manager(c)
	m.Load(c.Request.Context())
	c.JSON(http.StatusOK, cartResponse(m, notifier))
}
