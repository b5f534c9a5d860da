// Package events defines the payloads published to Kafka when bookings,
// land purchases, and subscriptions change state. Consumers (the notifier)
// decode these payloads from the message value.
package events

import "time"

// Event types carried in the event-type header.
const (
	TypeBookingCreated        = "booking.created"
	TypeBookingCancelled      = "booking.cancelled"
	TypeLandPurchased         = "land.purchased"
	TypeSubscriptionActivated = "subscription.activated"
)

// SchemaVersion is stamped on every published event.
const SchemaVersion = "1"

type BookingCreated struct {
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	TripType   string    `json:"trip_type"`
	FlightDate time.Time `json:"flight_date"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

type BookingCancelled struct {
	BookingID   string    `json:"booking_id"`
	UserID      string    `json:"user_id"`
	FlightDate  time.Time `json:"flight_date"`
	CancelledAt time.Time `json:"cancelled_at"`
}

type LandPurchased struct {
	PurchaseID        string    `json:"purchase_id"`
	UserID            string    `json:"user_id"`
	BookingID         string    `json:"booking_id"`
	LandType          string    `json:"land_type"`
	CertificateNumber string    `json:"certificate_number"`
	PurchasedAt       time.Time `json:"purchased_at"`
}

type SubscriptionActivated struct {
	UserID      string    `json:"user_id"`
	Plan        string    `json:"plan"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	ActivatedAt time.Time `json:"activated_at"`
}
