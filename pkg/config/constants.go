package config

// Booking and land purchase statuses.
const (
	Pending    = "pending"
	Confirmed  = "confirmed"
	Completed  = "completed"
	Cancelled  = "cancelled"
	Registered = "registered"
)

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// Subscription plans.
const (
	PlanNone    = "none"
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
	PlanPremium = "premium"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Land types.
const (
	LandResidential = "residential"
	LandCommercial  = "commercial"
	LandLuxury      = "luxury"
)

const TripMars = "mars"
