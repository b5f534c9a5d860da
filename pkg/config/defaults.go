package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "beyond-earth"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultPaymentBaseURL = "https://api.payment.localhost"
	DefaultFrontendURL    = "http://localhost:3000"

	DefaultPlanPriceMonthlyCents = 2999
	DefaultPlanPriceYearlyCents  = 29999
	DefaultPlanPricePremiumCents = 49999

	DefaultCertificatePrefix    = "BE-LAND"
	DefaultCertificateSuffixLen = 9

	DefaultAltitudeMinKm = 100.0
	DefaultAltitudeMaxKm = 500.0

	DefaultBookingEventsTopic      = "beyond-earth.bookings"
	DefaultLandEventsTopic         = "beyond-earth.land"
	DefaultSubscriptionEventsTopic = "beyond-earth.subscriptions"
	DefaultEventsDLQTopic          = "beyond-earth.events.dlq"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100
)
