package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var secret = []byte("test-secret-key-for-token-signing-at-least-32-bytes")

func freshToken(t *testing.T) string {
	t.Helper()
	token, err := CreateToken(&Claims{
		Subject:   "render-client",
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}, secret)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	return token
}

func TestVerifyTokenRoundTrip(t *testing.T) {
	token := freshToken(t)

	claims, err := VerifyToken(token, VerifyConfig{SecretKey: secret})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "render-client" {
		t.Errorf("subject: got %q", claims.Subject)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	token, err := CreateToken(&Claims{
		IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	}, secret)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	if _, err := VerifyToken(token, VerifyConfig{SecretKey: secret}); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyTokenWrongKey(t *testing.T) {
	token := freshToken(t)

	_, err := VerifyToken(token, VerifyConfig{SecretKey: []byte("another-secret-key-that-is-long-enough-too")})
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	if _, err := VerifyToken("not.a.token", VerifyConfig{SecretKey: secret}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := VerifyToken("", VerifyConfig{SecretKey: secret}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for empty token, got %v", err)
	}
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	handler := Middleware(string(secret), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/jobs/stats", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestMiddlewareAcceptsValidToken(t *testing.T) {
	handler := Middleware(string(secret), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/jobs/stats", nil)
	req.Header.Set("Authorization", "Bearer "+freshToken(t))
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}

func TestMiddlewareDisabledWithoutSecret(t *testing.T) {
	handler := Middleware("", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/jobs/stats", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200 with auth disabled", rec.Code)
	}
}
