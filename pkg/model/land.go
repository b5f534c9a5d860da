package model

import (
	"time"
)

type LandPurchase struct {
	ID                   string               `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID               string               `json:"user_id" bson:"user_id" validate:"required,mongodb"`
	BookingID            string               `json:"booking_id" bson:"booking_id" validate:"required,mongodb"`
	LandType             string               `json:"land_type" bson:"land_type" validate:"required,oneof=residential commercial luxury"`
	Size                 float64              `json:"size" bson:"size" validate:"required,gt=0"`
	Price                float64              `json:"price" bson:"price" validate:"min=0"`
	Coordinates          Coordinates          `json:"coordinates" bson:"coordinates"`
	OwnershipCertificate OwnershipCertificate `json:"ownership_certificate" bson:"ownership_certificate"`
	MapLocation          string               `json:"map_location" bson:"map_location"`
	Status               string               `json:"status" bson:"status" validate:"required,oneof=pending confirmed registered"`
	CreatedAt            time.Time            `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// OwnershipCertificate is generated exactly once at purchase time and never
// regenerated afterwards.
type OwnershipCertificate struct {
	CertificateNumber   string    `json:"certificate_number" bson:"certificate_number"`
	IssueDate           time.Time `json:"issue_date" bson:"issue_date"`
	RegistrationDetails string    `json:"registration_details" bson:"registration_details"`
}

type LandPurchaseInput struct {
	BookingID   string       `json:"booking_id" validate:"required,mongodb"`
	LandType    string       `json:"land_type" validate:"required,oneof=residential commercial luxury"`
	Size        float64      `json:"size" validate:"required,gt=0"`
	Price       float64      `json:"price" validate:"min=0"`
	Coordinates *Coordinates `json:"coordinates,omitempty" validate:"omitempty"`
}
