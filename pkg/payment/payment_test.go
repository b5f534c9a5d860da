package payment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateCheckoutSession(t *testing.T) {
	var gotAuth string
	var gotInput CheckoutInput

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotInput); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Session{
			ID:            "cs_123",
			URL:           "https://checkout.example/cs_123",
			Status:        SessionOpen,
			PaymentStatus: StatusUnpaid,
			AmountCents:   2999,
		})
	}))
	defer server.Close()

	c := NewHTTPClient(server.URL, "sk_test")
	session, err := c.CreateCheckoutSession(CheckoutInput{
		AmountCents: 2999,
		Currency:    "usd",
		Description: "monthly plan",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer sk_test" {
		t.Errorf("expected Authorization 'Bearer sk_test', got %q", gotAuth)
	}
	if gotInput.AmountCents != 2999 {
		t.Errorf("expected amount 2999, got %d", gotInput.AmountCents)
	}
	if session.ID != "cs_123" {
		t.Errorf("expected session ID cs_123, got %s", session.ID)
	}
	if session.Paid() {
		t.Error("open session should not report paid")
	}
}

func TestCreateCheckoutSessionProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid amount"})
	}))
	defer server.Close()

	c := NewHTTPClient(server.URL, "sk_test")
	_, err := c.CreateCheckoutSession(CheckoutInput{AmountCents: -1})
	if err == nil {
		t.Fatal("expected error for provider rejection, got nil")
	}
}

func TestGetSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions/cs_456" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Session{
			ID:            "cs_456",
			Status:        SessionComplete,
			PaymentStatus: StatusPaid,
		})
	}))
	defer server.Close()

	c := NewHTTPClient(server.URL, "sk_test")
	session, err := c.GetSession("cs_456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !session.Paid() {
		t.Error("completed paid session should report paid")
	}
}

func TestGetSessionNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewHTTPClient(server.URL, "sk_test")
	if _, err := c.GetSession("missing"); err == nil {
		t.Fatal("expected error for missing session, got nil")
	}
}
