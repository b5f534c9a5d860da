package model

import (
	"time"
)

type User struct {
	ID           string       `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name         string       `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email        string       `json:"email" bson:"email" validate:"required,email"`
	Role         string       `json:"role" bson:"role" validate:"required,oneof=user admin"`
	Subscription Subscription `json:"subscription" bson:"subscription"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type Subscription struct {
	Plan             string    `json:"plan" bson:"plan" validate:"required,oneof=none monthly yearly premium"`
	StartDate        time.Time `json:"start_date" bson:"start_date"`
	EndDate          time.Time `json:"end_date" bson:"end_date"`
	IsActive         bool      `json:"is_active" bson:"is_active"`
	PaymentSessionID string    `json:"payment_session_id,omitempty" bson:"payment_session_id,omitempty"`
}

type UserUpdate struct {
	Name         string        `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email        string        `json:"email,omitempty" validate:"omitempty,email"`
	Role         string        `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
	Subscription *Subscription `json:"subscription,omitempty" validate:"omitempty"`
}
