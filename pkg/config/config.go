package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/Andrics/Beyond-Earth/pkg/client"
	"github.com/Andrics/Beyond-Earth/pkg/logger"
	"github.com/Andrics/Beyond-Earth/pkg/payment"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	AuthTokenSecret string

	PaymentBaseURL   string
	PaymentSecretKey string
	FrontendURL      string

	PlanPriceMonthlyCents int64
	PlanPriceYearlyCents  int64
	PlanPricePremiumCents int64

	CertificatePrefix    string
	CertificateSuffixLen int

	AltitudeMinKm float64
	AltitudeMaxKm float64

	BookingEventsTopic      string
	LandEventsTopic         string
	SubscriptionEventsTopic string
	EventsDLQTopic          string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log     *logger.Logger
	Client  *client.Client
	Payment payment.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		AuthTokenSecret: getEnvStr(EnvAuthTokenSecret, ""),

		PaymentBaseURL:   getEnvStr(EnvPaymentBaseURL, DefaultPaymentBaseURL),
		PaymentSecretKey: getEnvStr(EnvPaymentSecretKey, ""),
		FrontendURL:      getEnvStr(EnvFrontendURL, DefaultFrontendURL),

		PlanPriceMonthlyCents: int64(getEnvNum(EnvPlanPriceMonthly, DefaultPlanPriceMonthlyCents)),
		PlanPriceYearlyCents:  int64(getEnvNum(EnvPlanPriceYearly, DefaultPlanPriceYearlyCents)),
		PlanPricePremiumCents: int64(getEnvNum(EnvPlanPricePremium, DefaultPlanPricePremiumCents)),

		CertificatePrefix:    getEnvStr(EnvCertificatePrefix, DefaultCertificatePrefix),
		CertificateSuffixLen: getEnvNum(EnvCertificateSuffixLen, DefaultCertificateSuffixLen),

		AltitudeMinKm: getEnvFloat(EnvAltitudeMinKm, DefaultAltitudeMinKm),
		AltitudeMaxKm: getEnvFloat(EnvAltitudeMaxKm, DefaultAltitudeMaxKm),

		BookingEventsTopic:      getEnvStr(EnvBookingEventsTopic, DefaultBookingEventsTopic),
		LandEventsTopic:         getEnvStr(EnvLandEventsTopic, DefaultLandEventsTopic),
		SubscriptionEventsTopic: getEnvStr(EnvSubscriptionEventsTopic, DefaultSubscriptionEventsTopic),
		EventsDLQTopic:          getEnvStr(EnvEventsDLQTopic, DefaultEventsDLQTopic),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, logger.INFO),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) SetPayment() {
	cfg.Payment = payment.NewHTTPClient(cfg.PaymentBaseURL, cfg.PaymentSecretKey)
	cfg.Log.Info("Payment client configured", "base_url", cfg.PaymentBaseURL, "secret_key_set", cfg.PaymentSecretKey != "")
}

// PlanPriceCents returns the checkout price for a plan. The bool reports
// whether the plan is purchasable (none is not).
func (cfg *Config) PlanPriceCents(plan string) (int64, bool) {
	switch plan {
	case PlanMonthly:
		return cfg.PlanPriceMonthlyCents, true
	case PlanYearly:
		return cfg.PlanPriceYearlyCents, true
	case PlanPremium:
		return cfg.PlanPricePremiumCents, true
	default:
		return 0, false
	}
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}

	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.PlanPriceMonthlyCents <= 0 || cfg.PlanPriceYearlyCents <= 0 || cfg.PlanPricePremiumCents <= 0 {
		errors = append(errors, "plan prices must be positive")
	}

	if cfg.CertificatePrefix == "" {
		errors = append(errors, "CertificatePrefix cannot be empty")
	}
	if cfg.CertificateSuffixLen <= 0 {
		errors = append(errors, fmt.Sprintf("CertificateSuffixLen must be positive, got: %d", cfg.CertificateSuffixLen))
	}

	if cfg.AltitudeMinKm < 0 {
		errors = append(errors, fmt.Sprintf("AltitudeMinKm cannot be negative, got: %f", cfg.AltitudeMinKm))
	}
	if cfg.AltitudeMaxKm <= cfg.AltitudeMinKm {
		errors = append(errors, fmt.Sprintf("AltitudeMaxKm (%f) must be greater than AltitudeMinKm (%f)", cfg.AltitudeMaxKm, cfg.AltitudeMinKm))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"auth_secret_set", cfg.AuthTokenSecret != "",
		"payment_base_url", cfg.PaymentBaseURL,
		"payment_secret_set", cfg.PaymentSecretKey != "",
		"frontend_url", cfg.FrontendURL,
		"certificate_prefix", cfg.CertificatePrefix,
		"certificate_suffix_len", cfg.CertificateSuffixLen,
		"altitude_min_km", cfg.AltitudeMinKm,
		"altitude_max_km", cfg.AltitudeMaxKm,
		"booking_events_topic", cfg.BookingEventsTopic,
		"land_events_topic", cfg.LandEventsTopic,
		"subscription_events_topic", cfg.SubscriptionEventsTopic,
		"events_dlq_topic", cfg.EventsDLQTopic,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
