package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/realtyhub/backend/internal/common/clock"
	"github.com/realtyhub/backend/internal/observability/metrics"
	"github.com/realtyhub/backend/internal/user/domain"
)

// TokenIssuer mints HS256 bearer tokens with user identity claims. The
// transport layer's auth middleware verifies them with the same secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewTokenIssuer(secret string, ttl time.Duration, clk clock.Clock) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clk,
	}
}

func (i *TokenIssuer) Issue(userID domain.ID, email string) (string, error) {
	now := i.clock.Now()
	claims := jwt.MapClaims{
		"sub":   string(userID),
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(i.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(i.secret)
	if err != nil {
		return "", err
	}

	metrics.TokensIssued.Inc()
	return tokenString, nil
}
