// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// ErrAuthRequired signals that the shopper must sign in before the order
// can be submitted. The submitted form is stashed so it survives the
// round-trip through authentication.
var ErrAuthRequired = errors.New("authentication required to place an order")

// ErrEmptyCart rejects a submission with nothing to order.
var ErrEmptyCart = errors.New("cannot submit an order with no items")

// Form holds the buyer details entered at checkout
type Form struct {
	FullName    string  `json:"full_name" binding:"required"`
	Phone       string  `json:"phone" binding:"required"`
	Address     string  `json:"address" binding:"required"`
	City        string  `json:"city" binding:"required"`
	CompanyName *string `json:"company_name,omitempty"`
	TaxOffice   *string `json:"tax_office,omitempty"`
	TaxNumber   *string `json:"tax_number,omitempty"`
}

// Request is a full checkout submission
type Request struct {
	Form  Form
	Items []cart.Item
	// FromCart marks submissions sourced from the shopper's cart; only
	// those clear the cart after the order is stored. Direct purchases
	// leave the cart alone.
	FromCart bool
}

// Identity names the shopper. Email is empty for anonymous sessions.
type Identity struct {
	Email     string
	SessionID string
}

// OrderWriter persists orders and their lines as two separate writes
type OrderWriter interface {
	CreateOrder(ctx context.Context, o *order.Order) error
	CreateItems(ctx context.Context, items []order.OrderItem) error
}

// CartClearer empties the shopper's cart
type CartClearer interface {
	ClearFor(ctx context.Context, userEmail, sessionID string) error
}

// Pending is the whole purchase parked while the shopper signs in: the
// filled form plus the lines and total they were about to order. Buy-now
// purchases only exist here, so dropping the items would lose them.
type Pending struct {
	Form     Form        `json:"form"`
	Items    []cart.Item `json:"items"`
	Total    float64     `json:"total"`
	FromCart bool        `json:"from_cart"`
}

// Stash briefly holds a pending purchase for a shopper who has to sign in
// first. Pop returns nil when nothing is stashed.
type Stash interface {
	Put(ctx context.Context, sessionID string, pending *Pending) error
	Pop(ctx context.Context, sessionID string) (*Pending, error)
}

// Service drives order submission
type Service struct {
	orders OrderWriter
	carts  CartClearer
	stash  Stash
	log    *logrus.Logger
}

// NewService creates a new checkout service
func NewService(orders OrderWriter, carts CartClearer, stash Stash, log *logrus.Logger) *Service {
	return &Service{
		orders: orders,
		carts:  carts,
		stash:  stash,
		log:    log,
	}
}

// Submit turns the checkout request into a stored order.
//
// Anonymous shoppers never reach the order tables: the whole pending
// purchase (form, items, total) is stashed under the session and
// ErrAuthRequired comes back, so the client can send them through sign-in
// and resume with everything intact afterwards.
//
// The order row and its item rows are two independent inserts with no
// wrapping transaction. If the items insert fails the order row stays
// behind without lines and the error is returned; the cart is only cleared
// once both inserts succeeded, and only for cart-sourced submissions.
func (s *Service) Submit(ctx context.Context, who Identity, req *Request) (*order.Order, error) {
	var total float64
	for _, item := range req.Items {
		total += item.Product.Price * float64(item.Quantity)
	}

	if who.Email == "" {
		pending := &Pending{
			Form:     req.Form,
			Items:    req.Items,
			Total:    total,
			FromCart: req.FromCart,
		}
		if err := s.stash.Put(ctx, who.SessionID, pending); err != nil {
			return nil, fmt.Errorf("failed to stash pending checkout: %w", err)
		}
		return nil, ErrAuthRequired
	}

	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	o := &order.Order{
		UserEmail:   who.Email,
		FullName:    req.Form.FullName,
		Phone:       req.Form.Phone,
		Address:     req.Form.Address,
		City:        req.Form.City,
		CompanyName: req.Form.CompanyName,
		TaxOffice:   req.Form.TaxOffice,
		TaxNumber:   req.Form.TaxNumber,
		TotalAmount: total,
		Status:      order.StatusPending,
	}
	if err := s.orders.CreateOrder(ctx, o); err != nil {
		return nil, err
	}

	items := make([]order.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = order.OrderItem{
			OrderID:   o.ID,
			ProductID: item.Product.ID,
			Title:     item.Product.Title,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		}
	}
	if err := s.orders.CreateItems(ctx, items); err != nil {
		s.log.WithError(err).WithField("order_id", o.ID).Error("Order items insert failed after order row was created")
		return nil, err
	}
	o.Items = items

	if req.FromCart {
		if err := s.carts.ClearFor(ctx, who.Email, who.SessionID); err != nil {
			// The order went through; a stale cart is an annoyance, not a
			// reason to fail the submission.
			s.log.WithError(err).WithField("order_id", o.ID).Warn("Failed to clear cart after checkout")
		}
	}

	return o, nil
}

// Resume pops the pending purchase stashed before sign-in, if any
func (s *Service) Resume(ctx context.Context, sessionID string) (*Pending, error) {
	pending, err := s.stash.Pop(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resume checkout: %w", err)
	}
	return pending, nil
}
