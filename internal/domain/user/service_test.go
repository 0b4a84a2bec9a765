// internal/domain/user/service_test.go
package user

import "testing"

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Jane@Example.COM", "jane@example.com"},
		{"  jane@example.com ", "jane@example.com"},
		{"jane@example.com", "jane@example.com"},
	}
	for _, tc := range cases {
		if got := normalizeEmail(tc.in); got != tc.want {
			t.Errorf("normalizeEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBeforeCreateLowercasesEmail(t *testing.T) {
	u := User{Email: "Jane@Example.COM"}
	if err := u.BeforeCreate(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "jane@example.com" {
		t.Errorf("expected lowercased email, got %q", u.Email)
	}
	if u.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected a fresh id assigned")
	}
}
