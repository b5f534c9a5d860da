package model

import (
	"time"
)

type ContactMessage struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Reference string    `json:"reference" bson:"reference" validate:"omitempty,uuid4"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Subject   string    `json:"subject" bson:"subject" validate:"required,min=2,max=200"`
	Message   string    `json:"message" bson:"message" validate:"required,min=2,max=5000"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
