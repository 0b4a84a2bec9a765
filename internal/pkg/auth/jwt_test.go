// internal/pkg/auth/jwt_test.go
package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "storefront-test"},
		JWT: config.JWTConfig{
			Secret:             "test-secret-key-that-is-long-enough!",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4},
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager(testConfig())
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "jane@example.com", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("wrong user id: %s", claims.UserID)
	}
	if claims.Email != "jane@example.com" {
		t.Errorf("wrong email: %s", claims.Email)
	}
	if !claims.IsAdmin {
		t.Error("expected admin claim")
	}
}

func TestRefreshTokenIsNotAccessToken(t *testing.T) {
	m := NewJWTManager(testConfig())

	token, err := m.GenerateRefreshToken(uuid.New(), "jane@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Error("refresh token must not validate as access token")
	}
	if _, err := m.ValidateRefreshToken(token); err != nil {
		t.Errorf("refresh token should validate as refresh: %v", err)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	m := NewJWTManager(testConfig())
	token, err := m.GenerateAccessToken(uuid.New(), "jane@example.com", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := testConfig()
	other.JWT.Secret = "another-secret-key-that-is-also-long"
	if _, err := NewJWTManager(other).ValidateToken(token); err == nil {
		t.Error("expected validation failure with a different secret")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	if got := ExtractTokenFromHeader("Bearer abc123"); got != "abc123" {
		t.Errorf("expected abc123, got %q", got)
	}
	if got := ExtractTokenFromHeader("abc123"); got != "" {
		t.Errorf("expected empty for missing scheme, got %q", got)
	}
	if got := ExtractTokenFromHeader(""); got != "" {
		t.Errorf("expected empty for empty header, got %q", got)
	}
}

func TestPasswordHashAndVerify(t *testing.T) {
	pm := NewPasswordManager(testConfig())

	hash, err := pm.HashPassword("correct horse 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "correct horse 1" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := pm.VerifyPassword("correct horse 1", hash); err != nil {
		t.Errorf("expected matching password to verify: %v", err)
	}
	if err := pm.VerifyPassword("wrong password 1", hash); err == nil {
		t.Error("expected mismatch to fail")
	}
}

func TestValidatePassword(t *testing.T) {
	pm := NewPasswordManager(testConfig())

	cases := []struct {
		password string
		valid    bool
	}{
		{"abc123xy", true},
		{"short1", false},
		{"allletters", false},
		{"12345678", false},
	}
	for _, tc := range cases {
		err := pm.ValidatePassword(tc.password)
		if tc.valid && err != nil {
			t.Errorf("%q: expected valid, got %v", tc.password, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("%q: expected rejection", tc.password)
		}
	}
}
