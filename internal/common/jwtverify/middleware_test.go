package jwtverify

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/realtyhub/backend/internal/common/logger"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func signToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-7",
		"email": "ada@example.com",
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func protectedHandler(t *testing.T, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		claims, ok := FromContext(r.Context())
		if !ok {
			t.Error("claims missing from request context")
		}
		if claims.UserID != "user-7" || claims.Email != "ada@example.com" {
			t.Errorf("claims = %+v, want user-7/ada@example.com", claims)
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func newMiddleware(t *testing.T) func(http.Handler) http.Handler {
	t.Helper()
	log, err := logger.New("", "test", "CRITICAL")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return Middleware(testSecret, log)
}

func TestMiddleware_ValidToken(t *testing.T) {
	var called bool
	handler := newMiddleware(t)(protectedHandler(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/v1/users/getUsers", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, time.Hour))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatal("handler was not invoked")
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not a bearer token", header: "Basic dXNlcjpwYXNz"},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "wrong secret", header: "Bearer " + func() string {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"sub": "user-7", "email": "ada@example.com",
				"exp": time.Now().Add(time.Hour).Unix(),
			})
			s, _ := token.SignedString([]byte("another-secret-entirely-32-bytes"))
			return s
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			handler := newMiddleware(t)(protectedHandler(t, &called))

			req := httptest.NewRequest(http.MethodGet, "/v1/users/getUsers", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if called {
				t.Error("handler must not run for rejected requests")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	var called bool
	handler := newMiddleware(t)(protectedHandler(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/v1/users/getUsers", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, -time.Hour))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if called {
		t.Error("handler must not run for expired tokens")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestParseToken_MissingIdentityClaims(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := ParseToken(signed, []byte(testSecret)); err == nil {
		t.Fatal("token without sub/email claims must be rejected")
	}
}
