package model

import (
	"time"
)

type Booking struct {
	ID                   string            `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID               string            `json:"user_id" bson:"user_id" validate:"required,mongodb"`
	TripType             string            `json:"trip_type" bson:"trip_type" validate:"required,oneof=mars"`
	MainTicket           MainTicket        `json:"main_ticket" bson:"main_ticket"`
	AdditionalActivities []ActivityBooking `json:"additional_activities" bson:"additional_activities" validate:"omitempty,dive"`
	FlightDate           time.Time         `json:"flight_date" bson:"flight_date" validate:"required"`
	TotalPrice           float64           `json:"total_price" bson:"total_price" validate:"min=0"`
	Status               string            `json:"status" bson:"status" validate:"required,oneof=pending confirmed completed cancelled"`
	PaymentStatus        string            `json:"payment_status" bson:"payment_status" validate:"required,oneof=pending paid refunded"`
	SpaceshipLocation    SpaceshipLocation `json:"spaceship_location" bson:"spaceship_location"`
	CreatedAt            time.Time         `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// MainTicket covers what every trip includes; activities beyond these are
// booked individually through AdditionalActivities.
type MainTicket struct {
	Spaceship     bool `json:"spaceship" bson:"spaceship"`
	Landing       bool `json:"landing" bson:"landing"`
	GalaxyViewing bool `json:"galaxy_viewing" bson:"galaxy_viewing"`
	BasicTour     bool `json:"basic_tour" bson:"basic_tour"`
}

type ActivityBooking struct {
	ActivityType string     `json:"activity_type" bson:"activity_type" validate:"required,oneof=mars-walking rover-ride photography souvenirs land-purchase moon-walking"`
	Booked       bool       `json:"booked" bson:"booked"`
	BookingDate  *time.Time `json:"booking_date,omitempty" bson:"booking_date,omitempty"`
	Price        float64    `json:"price" bson:"price" validate:"min=0"`
}

type SpaceshipLocation struct {
	Latitude    float64   `json:"latitude" bson:"latitude" validate:"latitude"`
	Longitude   float64   `json:"longitude" bson:"longitude" validate:"longitude"`
	Altitude    float64   `json:"altitude" bson:"altitude" validate:"min=0"`
	LastUpdated time.Time `json:"last_updated" bson:"last_updated"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude" bson:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude" validate:"longitude"`
}

type BookingUpdate struct {
	AdditionalActivities *[]ActivityBooking `json:"additional_activities,omitempty" validate:"omitempty,dive"`
	TotalPrice           *float64           `json:"total_price,omitempty" validate:"omitempty,min=0"`
	Status               string             `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	PaymentStatus        string             `json:"payment_status,omitempty" validate:"omitempty,oneof=pending paid refunded"`
	SpaceshipLocation    *SpaceshipLocation `json:"spaceship_location,omitempty" validate:"omitempty"`
}

type CountdownParts struct {
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

type NextFlightCountdown struct {
	NextFlightDate *time.Time      `json:"next_flight_date"`
	Countdown      *CountdownParts `json:"countdown"`
}
