package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvAuthTokenSecret = "AUTH_TOKEN_SECRET"

	EnvPaymentBaseURL   = "PAYMENT_BASE_URL"
	EnvPaymentSecretKey = "PAYMENT_SECRET_KEY"
	EnvFrontendURL      = "FRONTEND_URL"

	EnvPlanPriceMonthly = "PLAN_PRICE_MONTHLY_CENTS"
	EnvPlanPriceYearly  = "PLAN_PRICE_YEARLY_CENTS"
	EnvPlanPricePremium = "PLAN_PRICE_PREMIUM_CENTS"

	EnvCertificatePrefix    = "CERTIFICATE_PREFIX"
	EnvCertificateSuffixLen = "CERTIFICATE_SUFFIX_LENGTH"

	EnvAltitudeMinKm = "ALTITUDE_MIN_KM"
	EnvAltitudeMaxKm = "ALTITUDE_MAX_KM"

	EnvBookingEventsTopic      = "BOOKING_EVENTS_TOPIC"
	EnvLandEventsTopic         = "LAND_EVENTS_TOPIC"
	EnvSubscriptionEventsTopic = "SUBSCRIPTION_EVENTS_TOPIC"
	EnvEventsDLQTopic          = "EVENTS_DLQ_TOPIC"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
