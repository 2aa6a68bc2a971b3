package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/realtyhub/backend/internal/auth/service"
	"github.com/realtyhub/backend/internal/common/clock"
)

func TestTokenIssuer_ClaimsAndExpiry(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(issuedAt)
	issuer := service.NewTokenIssuer(testSecret, 24*time.Hour, clk)

	tokenString, err := issuer.Issue("user-42", "ada@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(clk.Now))
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("issued token did not verify")
	}

	if claims["sub"] != "user-42" {
		t.Errorf("sub = %v, want user-42", claims["sub"])
	}
	if claims["email"] != "ada@example.com" {
		t.Errorf("email = %v, want ada@example.com", claims["email"])
	}

	exp, _ := claims.GetExpirationTime()
	if want := issuedAt.Add(24 * time.Hour); !exp.Time.Equal(want) {
		t.Errorf("exp = %v, want %v", exp.Time, want)
	}
}

func TestTokenIssuer_ExpiredTokenRejected(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	issuer := service.NewTokenIssuer(testSecret, time.Hour, clk)

	tokenString, err := issuer.Issue("user-42", "ada@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	clk.Advance(2 * time.Hour)

	_, err = jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(clk.Now))
	if err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestTokenIssuer_WrongSecretRejected(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	issuer := service.NewTokenIssuer(testSecret, time.Hour, clk)

	tokenString, err := issuer.Issue("user-42", "ada@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte("another-secret-another-secret-ok"), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(clk.Now))
	if err == nil {
		t.Fatal("expected signature mismatch to be rejected")
	}
}
