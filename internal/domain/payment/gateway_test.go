// internal/domain/payment/gateway_test.go
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testCreds() Credentials {
	return Credentials{
		MerchantID:     "123456",
		MerchantKey:    "test-key",
		MerchantSalt:   "test-salt",
		TestMode:       true,
		MaxInstallment: 12,
	}
}

func testGateway(apiURL string) *Gateway {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return &Gateway{
		apiURL:     apiURL,
		iframeBase: "https://www.paytr.com/odeme/guvenli",
		successURL: "https://shop.example.com/payment/success",
		failureURL: "https://shop.example.com/payment/failure",
		httpClient: &http.Client{Timeout: 5 * time.Second},
		log:        log,
	}
}

func testInitiateRequest() *InitiateRequest {
	return &InitiateRequest{
		MerchantOID: "order-1",
		Amount:      25.49,
		Currency:    "TL",
		UserIP:      "203.0.113.9",
		Email:       "jane@example.com",
		Name:        "Jane Buyer",
		Address:     "1 Main St, Istanbul",
		Phone:       "+90 555 000 0000",
		Basket: []BasketItem{
			{Name: "Widget", Price: 19.99, Quantity: 1},
			{Name: "Gadget", Price: 5.50, Quantity: 1},
		},
	}
}

func TestInitiateSuccess(t *testing.T) {
	var seen url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		seen = r.PostForm
		w.Write([]byte(`{"status":"success","token":"tok-abc"}`))
	}))
	defer server.Close()

	g := testGateway(server.URL)
	session, err := g.Initiate(context.Background(), testCreds(), testInitiateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if session.Token != "tok-abc" {
		t.Errorf("wrong token: %q", session.Token)
	}
	if session.IframeURL != "https://www.paytr.com/odeme/guvenli/tok-abc" {
		t.Errorf("wrong iframe url: %q", session.IframeURL)
	}

	if got := seen.Get("payment_amount"); got != "2549" {
		t.Errorf("expected amount in minor units, got %q", got)
	}
	if got := seen.Get("test_mode"); got != "1" {
		t.Errorf("expected test_mode 1, got %q", got)
	}
	if seen.Get("paytr_token") == "" {
		t.Error("expected signed request token")
	}
	if seen.Get("user_basket") == "" {
		t.Error("expected encoded basket")
	}
}

func TestInitiateRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"failed","reason":"invalid merchant"}`))
	}))
	defer server.Close()

	g := testGateway(server.URL)
	_, err := g.Initiate(context.Background(), testCreds(), testInitiateRequest())
	if err == nil {
		t.Fatal("expected error for rejected session")
	}
}

func TestInitiateMissingCredentials(t *testing.T) {
	g := testGateway("http://unused.invalid")
	_, err := g.Initiate(context.Background(), Credentials{}, testInitiateRequest())
	if err == nil {
		t.Fatal("expected error for missing credentials")
	}
}

func TestCredentialsFallback(t *testing.T) {
	env := Credentials{
		MerchantID:   "env-id",
		MerchantKey:  "env-key",
		MerchantSalt: "env-salt",
		TestMode:     true,
	}

	empty := Credentials{MaxInstallment: 12}
	got := empty.withFallback(env)
	if got.MerchantID != "env-id" || got.MerchantKey != "env-key" || got.MerchantSalt != "env-salt" {
		t.Errorf("expected environment credentials when settings are empty, got %+v", got)
	}
	if !got.TestMode {
		t.Error("expected environment test mode when settings are empty")
	}
	if got.MaxInstallment != 12 {
		t.Errorf("installments come from settings, got %d", got.MaxInstallment)
	}

	configured := testCreds()
	got = configured.withFallback(env)
	if got.MerchantID != configured.MerchantID || got.MerchantKey != configured.MerchantKey {
		t.Errorf("settings credentials must win over the environment, got %+v", got)
	}
}

func TestVerifyCallback(t *testing.T) {
	creds := testCreds()

	form := url.Values{
		"merchant_oid": {"order-1"},
		"status":       {"success"},
		"total_amount": {"2549"},
	}
	mac := hmac.New(sha256.New, []byte(creds.MerchantKey))
	mac.Write([]byte("order-1" + creds.MerchantSalt + "success" + "2549"))
	form.Set("hash", base64.StdEncoding.EncodeToString(mac.Sum(nil)))

	if !VerifyCallback(creds, form) {
		t.Error("expected valid callback to verify")
	}

	form.Set("total_amount", "1")
	if VerifyCallback(creds, form) {
		t.Error("expected tampered callback to fail verification")
	}
}
