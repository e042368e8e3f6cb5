package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/metalldk/storefront/pkg/config"
)

func testConfig() config.DevServerConfig {
	return config.DevServerConfig{
		JWTSecret:         "secret",
		JWTIssuer:         "storefront-devserver",
		SessionTTLMinutes: 30,
	}
}

func TestMintAndParseSessionToken(t *testing.T) {
	cfg := testConfig()
	now := time.Now().UTC()
	userID := uuid.New()

	token, err := MintSessionToken(cfg, now, SessionPayload{UserID: userID, Email: "test@example.com"})
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	claims, err := ParseSessionToken(cfg, token)
	if err != nil {
		t.Fatalf("parse session token: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user_id %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "test@example.com" || claims.Phone != "" {
		t.Fatalf("unexpected identity %q/%q", claims.Email, claims.Phone)
	}
	if claims.Issuer != cfg.JWTIssuer {
		t.Fatalf("expected issuer %s, got %s", cfg.JWTIssuer, claims.Issuer)
	}
	if claims.ID == "" {
		t.Fatal("expected a generated jti")
	}

	exp := now.Add(30 * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v", exp, claims.ExpiresAt.UTC())
	}
}

func TestParseSessionTokenInvalidSignature(t *testing.T) {
	cfg := testConfig()
	token, err := MintSessionToken(cfg, time.Now(), SessionPayload{UserID: uuid.New(), Phone: "+7 (999) 123-45-67"})
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}
	if _, err := ParseSessionToken(cfg, token+"x"); err == nil {
		t.Fatal("expected invalid signature error")
	}

	other := cfg
	other.JWTSecret = "other"
	if _, err := ParseSessionToken(other, token); err == nil {
		t.Fatal("expected wrong secret to fail")
	}
}

func TestParseSessionTokenExpired(t *testing.T) {
	cfg := testConfig()
	token, err := MintSessionToken(cfg, time.Now().Add(-time.Hour), SessionPayload{UserID: uuid.New(), Email: "a@b.co"})
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	_, err = ParseSessionToken(cfg, token)
	if err == nil {
		t.Fatal("expected expiration error")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMintSessionTokenValidation(t *testing.T) {
	cfg := testConfig()
	if _, err := MintSessionToken(cfg, time.Now(), SessionPayload{Email: "a@b.co"}); err == nil {
		t.Fatal("expected missing user id to fail")
	}
	if _, err := MintSessionToken(cfg, time.Now(), SessionPayload{UserID: uuid.New()}); err == nil {
		t.Fatal("expected missing identity to fail")
	}
	cfg.SessionTTLMinutes = 0
	if _, err := MintSessionToken(cfg, time.Now(), SessionPayload{UserID: uuid.New(), Email: "a@b.co"}); err == nil {
		t.Fatal("expected zero ttl to fail")
	}
}
