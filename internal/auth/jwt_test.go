package auth_test

import (
	"testing"
	"time"

	"github.com/deepakpotluri/jobPortal-Backend/internal/auth"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	m := auth.NewManager("test-secret", 24*time.Hour)

	token, err := m.GenerateToken("user-1", "employer@acme.test", "employer")

	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := m.VerifyToken(token)

	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Fatalf("got userID %q, want %q", claims.UserID, "user-1")
	}
	if claims.Email != "employer@acme.test" {
		t.Fatalf("got email %q, want %q", claims.Email, "employer@acme.test")
	}
	if claims.Role != "employer" {
		t.Fatalf("got role %q, want %q", claims.Role, "employer")
	}
	if claims.JTI == "" {
		t.Fatal("token should carry a jti")
	}

	wantExpiry := time.Now().UTC().Add(24 * time.Hour)
	gotExpiry := claims.ExpiresAt.Time

	if gotExpiry.Before(wantExpiry.Add(-time.Minute)) || gotExpiry.After(wantExpiry.Add(time.Minute)) {
		t.Fatalf("expiry %v not within a minute of %v", gotExpiry, wantExpiry)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	m := auth.NewManager("test-secret", -time.Hour)

	token, err := m.GenerateToken("user-1", "a@b.test", "user")

	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := m.VerifyToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	issuer := auth.NewManager("secret-a", time.Hour)
	verifier := auth.NewManager("secret-b", time.Hour)

	token, err := issuer.GenerateToken("user-1", "a@b.test", "user")

	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := verifier.VerifyToken(token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)

	if _, err := m.VerifyToken("not-a-token"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}
