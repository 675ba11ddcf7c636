package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService("test-secret", DefaultTokenTTL)
	if err != nil {
		t.Fatalf("creating token service: %v", err)
	}
	return svc
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	if _, err := NewTokenService("", DefaultTokenTTL); err == nil {
		t.Fatal("expected error for empty secret, got nil")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.Issue("user_abcdefghijklmnopqrstuvwx")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	userID, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verifying token: %v", err)
	}
	if userID != "user_abcdefghijklmnopqrstuvwx" {
		t.Errorf("user ID = %q, want the issued ID", userID)
	}
}

func TestTokenExpiry(t *testing.T) {
	svc := newTestTokenService(t)

	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue("user_abcdefghijklmnopqrstuvwx")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	// Just before expiry: still valid.
	svc.now = func() time.Time { return issuedAt.Add(DefaultTokenTTL - time.Minute) }
	if _, err := svc.Verify(token); err != nil {
		t.Errorf("token rejected before expiry: %v", err)
	}

	// Past expiry: ErrTokenExpired, not a generic failure.
	svc.now = func() time.Time { return issuedAt.Add(DefaultTokenTTL + time.Minute) }
	_, err = svc.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expired token: err = %v, want ErrTokenExpired", err)
	}
}

func TestTokenTampered(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.Issue("user_abcdefghijklmnopqrstuvwx")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Verify(tampered)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("tampered token: err = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	svc := newTestTokenService(t)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c", "....."} {
		_, err := svc.Verify(token)
		if !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("Verify(%q): err = %v, want ErrTokenInvalid", token, err)
		}
	}
}

func TestTokenWrongSecret(t *testing.T) {
	svc := newTestTokenService(t)
	other, err := NewTokenService("different-secret", DefaultTokenTTL)
	if err != nil {
		t.Fatalf("creating second service: %v", err)
	}

	token, err := svc.Issue("user_abcdefghijklmnopqrstuvwx")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	if _, err := other.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("cross-secret token: err = %v, want ErrTokenInvalid", err)
	}
}
