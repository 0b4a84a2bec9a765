// internal/domain/payment/gateway.go
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
)

// Credentials are the merchant keys for the hosted payment page. They come
// from the admin-managed payment settings, not from the environment.
type Credentials struct {
	MerchantID     string
	MerchantKey    string
	MerchantSalt   string
	TestMode       bool
	MaxInstallment int
}

// BasketItem is one line of the basket sent to the gateway
type BasketItem struct {
	Name     string
	Price    float64
	Quantity int
}

// InitiateRequest carries everything the gateway needs to open a session
type InitiateRequest struct {
	MerchantOID string
	Amount      float64
	Currency    string
	UserIP      string
	Email       string
	Name        string
	Address     string
	Phone       string
	Basket      []BasketItem
}

// Session is an open hosted-payment session. The client embeds IframeURL.
type Session struct {
	Token     string `json:"token"`
	IframeURL string `json:"iframe_url"`
}

// tokenResponse is the gateway's get-token reply
type tokenResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
	Reason string `json:"reason"`
}

// Gateway talks to the PayTR-style hosted payment API: post the signed
// basket, get a token back, render the token's iframe URL.
type Gateway struct {
	apiURL     string
	iframeBase string
	successURL string
	failureURL string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewGateway creates a gateway client from config
func NewGateway(cfg *config.Config, log *logrus.Logger) *Gateway {
	return &Gateway{
		apiURL:     cfg.Gateway.APIURL,
		iframeBase: cfg.Gateway.IframeBase,
		successURL: cfg.Gateway.SuccessURL,
		failureURL: cfg.Gateway.FailureURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

// amountMinor renders the amount the way the gateway wants it: an integer
// count of the currency's minor unit.
func amountMinor(amount float64) string {
	return fmt.Sprintf("%d", int64(math.Round(amount*100)))
}

// encodeBasket renders the basket as the gateway's base64 JSON triples
func encodeBasket(basket []BasketItem) (string, error) {
	triples := make([][3]interface{}, len(basket))
	for i, item := range basket {
		triples[i] = [3]interface{}{item.Name, fmt.Sprintf("%.2f", item.Price), item.Quantity}
	}
	data, err := json.Marshal(triples)
	if err != nil {
		return "", fmt.Errorf("failed to encode basket: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// sign computes the request token: HMAC-SHA256 over the concatenated
// request fields plus the merchant salt, keyed by the merchant key.
func sign(creds Credentials, parts ...string) string {
	mac := hmac.New(sha256.New, []byte(creds.MerchantKey))
	mac.Write([]byte(strings.Join(parts, "") + creds.MerchantSalt))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Initiate opens a hosted payment session for the request
func (g *Gateway) Initiate(ctx context.Context, creds Credentials, req *InitiateRequest) (*Session, error) {
	if creds.MerchantID == "" || creds.MerchantKey == "" || creds.MerchantSalt == "" {
		return nil, fmt.Errorf("payment gateway credentials not configured")
	}

	basket, err := encodeBasket(req.Basket)
	if err != nil {
		return nil, err
	}

	testMode := "0"
	if creds.TestMode {
		testMode = "1"
	}
	amount := amountMinor(req.Amount)
	noInstallment := "0"
	maxInstallment := fmt.Sprintf("%d", creds.MaxInstallment)

	token := sign(creds,
		creds.MerchantID, req.UserIP, req.MerchantOID, req.Email,
		amount, basket, noInstallment, maxInstallment, req.Currency, testMode,
	)

	form := url.Values{
		"merchant_id":       {creds.MerchantID},
		"user_ip":           {req.UserIP},
		"merchant_oid":      {req.MerchantOID},
		"email":             {req.Email},
		"payment_amount":    {amount},
		"paytr_token":       {token},
		"user_basket":       {basket},
		"no_installment":    {noInstallment},
		"max_installment":   {maxInstallment},
		"user_name":         {req.Name},
		"user_address":      {req.Address},
		"user_phone":        {req.Phone},
		"currency":          {req.Currency},
		"test_mode":         {testMode},
		"merchant_ok_url":   {g.successURL},
		"merchant_fail_url": {g.failureURL},
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway error (%d): %s", resp.StatusCode, string(body))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}
	if tr.Status != "success" {
		return nil, fmt.Errorf("gateway rejected payment: %s", tr.Reason)
	}
	if tr.Token == "" {
		return nil, fmt.Errorf("gateway returned empty token")
	}

	g.log.WithFields(logrus.Fields{
		"merchant_oid": req.MerchantOID,
		"amount":       amount,
	}).Info("Payment session opened")

	return &Session{
		Token:     tr.Token,
		IframeURL: fmt.Sprintf("%s/%s", strings.TrimRight(g.iframeBase, "/"), tr.Token),
	}, nil
}

// VerifyCallback checks the notification hash the gateway posts back after
// the shopper finishes. The hash covers the order reference, salt, status
// and amount, keyed by the merchant key.
func VerifyCallback(creds Credentials, form url.Values) bool {
	merchantOID := form.Get("merchant_oid")
	status := form.Get("status")
	totalAmount := form.Get("total_amount")
	got := form.Get("hash")

	mac := hmac.New(sha256.New, []byte(creds.MerchantKey))
	mac.Write([]byte(merchantOID + creds.MerchantSalt + status + totalAmount))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(got), []byte(want))
}
