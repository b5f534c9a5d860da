package service

import (
	"time"

	"github.com/Andrics/Beyond-Earth/pkg/config"
	"github.com/Andrics/Beyond-Earth/pkg/model"
)

// NextBooking picks the upcoming flight from a user's bookings: cancelled
// bookings and flights before now are skipped, the earliest flight date wins,
// and a tie on flight date goes to the lexicographically smaller ID so the
// result is deterministic. Returns nil when no booking qualifies.
func NextBooking(bookings []*model.Booking, now time.Time) *model.Booking {
	var next *model.Booking

	for _, b := range bookings {
		if b == nil || b.Status == config.Cancelled {
			continue
		}
		if b.FlightDate.Before(now) {
			continue
		}

		if next == nil {
			next = b
			continue
		}

		if b.FlightDate.Before(next.FlightDate) {
			next = b
		} else if b.FlightDate.Equal(next.FlightDate) && b.ID < next.ID {
			next = b
		}
	}

	return next
}
