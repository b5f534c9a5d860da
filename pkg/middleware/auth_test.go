package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Andrics/Beyond-Earth/pkg/logger"
)

func newTestLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Service: "test"})
}

func TestAuthValidToken(t *testing.T) {
	secret := "test-secret"
	var gotUserID string

	handler := Auth(secret, newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+SignToken("665f1f77bcf86cd799439011", secret))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if gotUserID != "665f1f77bcf86cd799439011" {
		t.Errorf("expected user ID on context, got %q", gotUserID)
	}
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler := Auth("secret", newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestAuthRejectsTamperedToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", SignToken("665f1f77bcf86cd799439011", "other-secret")},
		{"no signature", "665f1f77bcf86cd799439011"},
		{"empty signature", "665f1f77bcf86cd799439011."},
		{"swapped user", SignToken("665f1f77bcf86cd799439011", "secret")[len("665f1f77bcf86cd799439011")+1:]},
		{"garbage", "not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Auth("secret", newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler should not be reached")
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected status 401, got %d", rec.Code)
			}
		})
	}
}

func TestUserIDFromContextMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := UserIDFromContext(req.Context()); got != "" {
		t.Errorf("expected empty user ID, got %q", got)
	}
}
