package model

import (
	"time"
)

// Activity is a catalog entry; read-only input to booking and land flows.
type Activity struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Type        string    `json:"type" bson:"type" validate:"required,oneof=mars-walking rover-ride photography souvenirs land-purchase moon-walking"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Description string    `json:"description" bson:"description" validate:"omitempty,max=1000"`
	Price       float64   `json:"price" bson:"price" validate:"min=0"`
	Available   bool      `json:"available" bson:"available"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
