// Package payment talks to the external checkout provider. The provider is
// always reached through the Client interface so services can be tested
// without network access and so no package-level singleton is needed.
package payment

import (
	"fmt"
	"net/http"

	"github.com/Andrics/Beyond-Earth/pkg/client"
)

// Session statuses reported by the checkout provider.
const (
	SessionOpen     = "open"
	SessionComplete = "complete"
	SessionExpired  = "expired"
)

// Payment statuses reported by the checkout provider.
const (
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
)

type CheckoutInput struct {
	AmountCents int64             `json:"amount_cents"`
	Currency    string            `json:"currency"`
	Description string            `json:"description"`
	SuccessURL  string            `json:"success_url"`
	CancelURL   string            `json:"cancel_url"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type Session struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	AmountCents   int64             `json:"amount_cents"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// Paid reports whether the session finished with a successful payment.
func (s *Session) Paid() bool {
	return s.Status == SessionComplete && s.PaymentStatus == StatusPaid
}

type Client interface {
	CreateCheckoutSession(input CheckoutInput) (*Session, error)
	GetSession(sessionID string) (*Session, error)
}

type HTTPClient struct {
	http      *client.HttpClient
	secretKey string
}

func NewHTTPClient(baseURL, secretKey string) *HTTPClient {
	return &HTTPClient{
		http:      client.NewHttpClient(baseURL),
		secretKey: secretKey,
	}
}

func (c *HTTPClient) CreateCheckoutSession(input CheckoutInput) (*Session, error) {
	resp, err := c.http.POSTWithHeaders("/v1/checkout/sessions", input, c.authHeaders())
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("checkout provider returned status %d: %s", resp.StatusCode, client.GetErrorMessage(resp))
	}

	var session Session
	if err := resp.DecodeJSON(&session); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}
	return &session, nil
}

func (c *HTTPClient) GetSession(sessionID string) (*Session, error) {
	resp, err := c.http.GETWithHeaders("/v1/checkout/sessions/"+sessionID, c.authHeaders())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch checkout session: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("checkout session %s not found", sessionID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("checkout provider returned status %d: %s", resp.StatusCode, client.GetErrorMessage(resp))
	}

	var session Session
	if err := resp.DecodeJSON(&session); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}
	return &session, nil
}

func (c *HTTPClient) authHeaders() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + c.secretKey,
	}
}
