package services_test

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"trapbite/internal/services"
	"trapbite/internal/session"
)

const testSecret = "test-secret-test-secret-test-secret"

func newAuth(t *testing.T) *services.AuthService {
	t.Helper()
	creds, err := services.NewAdminCredentials("Admin@Example.com", "s3cret!", "", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return services.NewAuthService(creds, session.NewJWTIssuer(testSecret, time.Hour))
}

func TestAuthService_Login(t *testing.T) {
	auth := newAuth(t)

	tok, exp, err := auth.Login(" admin@example.com ", "s3cret!")
	if err != nil || tok == "" || exp.IsZero() {
		t.Fatalf("login: tok=%q err=%v", tok, err)
	}
	sub, err := auth.CurrentSubject(tok)
	if err != nil || sub != "admin@example.com" {
		t.Fatalf("subject=%q err=%v", sub, err)
	}
}

func TestAuthService_BadCredentials(t *testing.T) {
	auth := newAuth(t)
	for _, c := range []struct{ email, pw string }{
		{"admin@example.com", "wrong"},
		{"someone@example.com", "s3cret!"},
		{"", ""},
	} {
		if _, _, err := auth.Login(c.email, c.pw); !errors.Is(err, services.ErrBadCreds) {
			t.Errorf("login(%q,%q): expected ErrBadCreds, got %v", c.email, c.pw, err)
		}
	}
}

func TestNewAdminCredentials_FromHash(t *testing.T) {
	h, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	creds, err := services.NewAdminCredentials("a@b.co", "", string(h), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := creds.Verify("a@b.co", "pw"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if _, err := services.NewAdminCredentials("a@b.co", "", "not-a-hash", bcrypt.MinCost); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

func TestAuthService_LogoutRevokes(t *testing.T) {
	auth := newAuth(t)
	tok, _, err := auth.Login("admin@example.com", "s3cret!")
	if err != nil {
		t.Fatal(err)
	}
	if err := auth.Logout(tok); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.CurrentSubject(tok); !errors.Is(err, session.ErrInvalidToken) {
		t.Fatalf("token should be revoked, got %v", err)
	}
	if err := auth.Logout(""); err != nil {
		t.Fatalf("empty logout: %v", err)
	}
}
