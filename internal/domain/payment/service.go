// internal/domain/payment/service.go
package payment

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/settings"
)

// ErrPaymentDisabled rejects payment attempts while the gateway is turned
// off in the back office.
var ErrPaymentDisabled = fmt.Errorf("online payment is not enabled")

// Service drives the payment flow: open a session for an order, then move
// the order forward when the gateway calls back.
type Service struct {
	gateway  *Gateway
	settings *settings.Service
	orders   *order.Service
	envCreds Credentials
	log      *logrus.Logger
}

// NewService creates a new payment service
func NewService(gateway *Gateway, settingsService *settings.Service, orderService *order.Service, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		gateway:  gateway,
		settings: settingsService,
		orders:   orderService,
		envCreds: Credentials{
			MerchantID:   cfg.Gateway.MerchantID,
			MerchantKey:  cfg.Gateway.MerchantKey,
			MerchantSalt: cfg.Gateway.MerchantSalt,
			TestMode:     cfg.Gateway.TestMode,
		},
		log: log,
	}
}

// withFallback fills empty merchant credentials from the environment. The
// admin-managed settings row wins once any credential is set there.
func (c Credentials) withFallback(env Credentials) Credentials {
	if c.MerchantID != "" || c.MerchantKey != "" || c.MerchantSalt != "" {
		return c
	}
	c.MerchantID = env.MerchantID
	c.MerchantKey = env.MerchantKey
	c.MerchantSalt = env.MerchantSalt
	c.TestMode = env.TestMode
	return c
}

func (s *Service) credentials() (Credentials, error) {
	ps, err := s.settings.GetPayment()
	if err != nil {
		return Credentials{}, err
	}
	if !ps.PaymentEnabled {
		return Credentials{}, ErrPaymentDisabled
	}
	creds := Credentials{
		MerchantID:     ps.PaytrMerchantID,
		MerchantKey:    ps.PaytrMerchantKey,
		MerchantSalt:   ps.PaytrMerchantSalt,
		TestMode:       ps.TestMode,
		MaxInstallment: ps.MaxInstallment,
	}
	return creds.withFallback(s.envCreds), nil
}

// InitiateForOrder opens a hosted payment session for an existing order.
// The order id doubles as the gateway's merchant reference.
func (s *Service) InitiateForOrder(ctx context.Context, orderID uuid.UUID, userIP string) (*Session, error) {
	creds, err := s.credentials()
	if err != nil {
		return nil, err
	}

	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	basket := make([]BasketItem, len(o.Items))
	for i, item := range o.Items {
		basket[i] = BasketItem{
			Name:     item.Title,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	return s.gateway.Initiate(ctx, creds, &InitiateRequest{
		MerchantOID: o.ID.String(),
		Amount:      o.TotalAmount,
		Currency:    "TL",
		UserIP:      userIP,
		Email:       o.UserEmail,
		Name:        o.FullName,
		Address:     fmt.Sprintf("%s, %s", o.Address, o.City),
		Phone:       o.Phone,
		Basket:      basket,
	})
}

// HandleCallback processes the gateway's server-to-server notification.
// A verified success moves the order to processing; anything else is
// logged and acknowledged so the gateway stops retrying.
func (s *Service) HandleCallback(ctx context.Context, form url.Values) error {
	creds, err := s.credentials()
	if err != nil {
		return err
	}

	if !VerifyCallback(creds, form) {
		return fmt.Errorf("invalid callback signature")
	}

	merchantOID := form.Get("merchant_oid")
	orderID, err := uuid.Parse(merchantOID)
	if err != nil {
		return fmt.Errorf("invalid order reference in callback: %s", merchantOID)
	}

	status := form.Get("status")
	if status != "success" {
		s.log.WithFields(logrus.Fields{
			"order_id": orderID,
			"status":   status,
			"reason":   form.Get("failed_reason_msg"),
		}).Warn("Payment failed")
		return nil
	}

	if _, err := s.orders.UpdateStatus(ctx, orderID, order.StatusProcessing); err != nil {
		return fmt.Errorf("failed to advance paid order: %w", err)
	}

	s.log.WithField("order_id", orderID).Info("Payment confirmed")
	return nil
}
