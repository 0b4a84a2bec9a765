// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/email"
	"gorm.io/gorm"
)

// CheckoutHandler handles order submission endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	cartService     *cart.Service
	productService  *product.Service
	mailer          *email.Mailer
	feed            *OrderFeed
	log             *logrus.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger, feed *OrderFeed) *CheckoutHandler {
	cartService := cart.NewService(db, redisClient, cfg, log)
	orderService := order.NewService(db, cfg, log)
	stash := checkout.NewRedisStash(redisClient, cfg)

	return &CheckoutHandler{
		checkoutService: checkout.NewService(orderService, cartService, stash, log),
		cartService:     cartService,
		productService:  product.NewService(db, cfg, log),
		mailer:          email.NewMailer(cfg, log),
		feed:            feed,
		log:             log,
	}
}

// directItem is one line of a direct (buy-now) purchase
type directItem struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// SubmitRequest is the checkout payload. With no explicit items the order
// is built from the shopper's cart and the cart is cleared on success.
type SubmitRequest struct {
	checkout.Form
	Items []directItem `json:"items"`
}

// Submit handles POST /checkout
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	userEmail, _ := middleware.GetUserEmailFromContext(c)
	sessionID := middleware.GetSessionIDFromContext(c)
	who := checkout.Identity{Email: userEmail, SessionID: sessionID}

	items, fromCart, err := h.resolveItems(c, &req, who)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.checkoutService.Submit(c.Request.Context(), who, &checkout.Request{
		Form:     req.Form,
		Items:    items,
		FromCart: fromCart,
	})
	if errors.Is(err, checkout.ErrAuthRequired) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":         "Authentication required to place an order",
			"auth_required": true,
		})
		return
	}
	if errors.Is(err, checkout.ErrEmptyCart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit order"})
		return
	}

	if err := h.mailer.SendOrderConfirmation(o); err != nil {
		h.log.WithError(err).WithField("order_id", o.ID).Warn("Order confirmation email failed")
	}
	h.feed.OrderCreated(o)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order submitted successfully",
		"data":    o,
	})
}

// resolveItems picks the order lines: explicit items mean a direct
// purchase, otherwise the shopper's cart is the source.
func (h *CheckoutHandler) resolveItems(c *gin.Context, req *SubmitRequest, who checkout.Identity) ([]cart.Item, bool, error) {
	if len(req.Items) > 0 {
		items := make([]cart.Item, len(req.Items))
		for i, line := range req.Items {
			p, err := h.productService.Get(line.ProductID)
			if err != nil {
				return nil, false, err
			}
			items[i] = cart.Item{
				ID:       uuid.New(),
				Product:  p.Snapshot(),
				Quantity: line.Quantity,
			}
		}
		return items, false, nil
	}

	store := h.cartService.StoreFor(who.Email, who.SessionID)
	items, _, err := store.Load(c.Request.Context())
	if err != nil {
		return nil, false, err
	}
	return items, true, nil
}

// Resume handles POST /checkout/resume, returning the pending purchase
// (form, items and total) stashed before the shopper went through sign-in.
func (h *CheckoutHandler) Resume(c *gin.Context) {
	sessionID := middleware.GetSessionIDFromContext(c)

	pending, err := h.checkoutService.Resume(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resume checkout"})
		return
	}
	if pending == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pending checkout restored",
		"data":    pending,
	})
}
