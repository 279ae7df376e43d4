// File: internal/auth/jwt_test.go
package auth

import (
	"testing"
	"time"
)

var secret = []byte("test-secret")

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("abc-123", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}

	sessionID, err := ValidateSessionToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateSessionToken failed: %v", err)
	}
	if sessionID != "abc-123" {
		t.Fatalf("session ID = %q, want %q", sessionID, "abc-123")
	}
}

func TestSessionTokenEmptyID(t *testing.T) {
	if _, err := GenerateSessionToken("", secret, time.Hour); err == nil {
		t.Fatal("expected error for empty session ID")
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, _ := GenerateSessionToken("abc-123", secret, time.Hour)
	if _, err := ValidateSessionToken(token, []byte("other-secret")); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestSessionTokenExpired(t *testing.T) {
	token, _ := GenerateSessionToken("abc-123", secret, -time.Minute)
	if _, err := ValidateSessionToken(token, secret); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := GenerateAdminToken(secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAdminToken failed: %v", err)
	}
	if err := ValidateAdminToken(token, secret); err != nil {
		t.Fatalf("ValidateAdminToken failed: %v", err)
	}
}

func TestTokenSubjectsAreNotInterchangeable(t *testing.T) {
	sessionToken, _ := GenerateSessionToken("abc-123", secret, time.Hour)
	if err := ValidateAdminToken(sessionToken, secret); err == nil {
		t.Fatal("session token must not pass admin validation")
	}

	adminToken, _ := GenerateAdminToken(secret, time.Hour)
	if _, err := ValidateSessionToken(adminToken, secret); err == nil {
		t.Fatal("admin token must not pass session validation")
	}
}
